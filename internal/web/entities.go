package web

import (
	"net/http"

	"golang.org/x/text/message"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
)

// changeView is one rendered field transition of a confirmed edit.
type changeView struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

func changeViews(p *message.Printer, changes *changeset.ChangeSet) []changeView {
	fieldChanges := changes.Changes()
	out := make([]changeView, len(fieldChanges))
	for i, change := range fieldChanges {
		out[i] = changeView{
			Field: change.Field,
			Label: change.Label,
			Old:   changeset.Format(p, change.Old),
			New:   changeset.Format(p, change.New),
		}
	}
	return out
}

// deletionWarningView is the warning-stage payload of a staged deletion:
// what is about to be deleted and what the deletion cascades to.
type deletionWarningView struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Notices     []string `json:"notices"`
}

func warningView(p *message.Printer, target guard.Target) deletionWarningView {
	notices := make([]string, len(target.Notices))
	for i, key := range target.Notices {
		notices[i] = p.Sprintf(key)
	}
	return deletionWarningView{
		ID:          target.ID,
		DisplayName: target.DisplayName,
		Notices:     notices,
	}
}

// requiredQuery reads a required query parameter.
func requiredQuery(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", apperrors.New(apperrors.CodeRequestInvalid, name+" query parameter is required")
	}
	return value, nil
}

// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Company errors
	CodeCompanyNameEmpty  Code = "COMPANY_NAME_EMPTY"
	CodeCompanyTaxIDEmpty Code = "COMPANY_TAX_ID_EMPTY"

	// Branch errors
	CodeBranchNameEmpty      Code = "BRANCH_NAME_EMPTY"
	CodeBranchCompanyIDEmpty Code = "BRANCH_COMPANY_ID_EMPTY"

	// Warehouse errors
	CodeWarehouseNameEmpty       Code = "WAREHOUSE_NAME_EMPTY"
	CodeWarehouseCompanyIDEmpty  Code = "WAREHOUSE_COMPANY_ID_EMPTY"
	CodeWarehouseInvalidCapacity Code = "WAREHOUSE_INVALID_CAPACITY"

	// Manager errors
	CodeManagerNameEmpty      Code = "MANAGER_NAME_EMPTY"
	CodeManagerEmailEmpty     Code = "MANAGER_EMAIL_EMPTY"
	CodeManagerBranchIDEmpty  Code = "MANAGER_BRANCH_ID_EMPTY"
	CodeManagerCompanyIDEmpty Code = "MANAGER_COMPANY_ID_EMPTY"

	// Supplier errors
	CodeSupplierNameEmpty      Code = "SUPPLIER_NAME_EMPTY"
	CodeSupplierCompanyIDEmpty Code = "SUPPLIER_COMPANY_ID_EMPTY"

	// Customer errors
	CodeCustomerNameEmpty      Code = "CUSTOMER_NAME_EMPTY"
	CodeCustomerCompanyIDEmpty Code = "CUSTOMER_COMPANY_ID_EMPTY"

	// Guarded workflow errors
	CodeConfirmNameEmpty    Code = "CONFIRM_NAME_EMPTY"
	CodeConfirmNameMismatch Code = "CONFIRM_NAME_MISMATCH"
	CodePasswordEmpty       Code = "PASSWORD_EMPTY"
	CodePasswordTooShort    Code = "PASSWORD_TOO_SHORT"
	CodeReasonTooShort      Code = "REASON_TOO_SHORT"
	CodeConfirmInFlight     Code = "CONFIRM_IN_FLIGHT"
	CodeDeleteRejected      Code = "DELETE_REJECTED"
	CodeUpdateRejected      Code = "UPDATE_REJECTED"

	// Auth errors
	CodeCredentialsInvalid Code = "CREDENTIALS_INVALID"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"

	// Audit errors
	CodeAuditFilterInvalid Code = "AUDIT_FILTER_INVALID"

	// Transport errors
	CodeRequestInvalid Code = "REQUEST_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps the error code to an HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRequestInvalid:
		return http.StatusBadRequest
	case CodeCredentialsInvalid, CodeTokenInvalid, CodeTokenExpired, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConfirmInFlight:
		return http.StatusConflict
	case CodeUnknown, CodeDeleteRejected, CodeUpdateRejected:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

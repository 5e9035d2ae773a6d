package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown = "UNKNOWN"

	CodeCompanyNameEmpty  = "COMPANY_NAME_EMPTY"
	CodeCompanyTaxIDEmpty = "COMPANY_TAX_ID_EMPTY"

	CodeBranchNameEmpty      = "BRANCH_NAME_EMPTY"
	CodeBranchCompanyIDEmpty = "BRANCH_COMPANY_ID_EMPTY"

	CodeWarehouseNameEmpty       = "WAREHOUSE_NAME_EMPTY"
	CodeWarehouseCompanyIDEmpty  = "WAREHOUSE_COMPANY_ID_EMPTY"
	CodeWarehouseInvalidCapacity = "WAREHOUSE_INVALID_CAPACITY"

	CodeManagerNameEmpty      = "MANAGER_NAME_EMPTY"
	CodeManagerEmailEmpty     = "MANAGER_EMAIL_EMPTY"
	CodeManagerBranchIDEmpty  = "MANAGER_BRANCH_ID_EMPTY"
	CodeManagerCompanyIDEmpty = "MANAGER_COMPANY_ID_EMPTY"

	CodeSupplierNameEmpty      = "SUPPLIER_NAME_EMPTY"
	CodeSupplierCompanyIDEmpty = "SUPPLIER_COMPANY_ID_EMPTY"

	CodeCustomerNameEmpty      = "CUSTOMER_NAME_EMPTY"
	CodeCustomerCompanyIDEmpty = "CUSTOMER_COMPANY_ID_EMPTY"

	CodeConfirmNameEmpty    = "CONFIRM_NAME_EMPTY"
	CodeConfirmNameMismatch = "CONFIRM_NAME_MISMATCH"
	CodePasswordEmpty       = "PASSWORD_EMPTY"
	CodePasswordTooShort    = "PASSWORD_TOO_SHORT"
	CodeReasonTooShort      = "REASON_TOO_SHORT"
	CodeConfirmInFlight     = "CONFIRM_IN_FLIGHT"
	CodeDeleteRejected      = "DELETE_REJECTED"
	CodeUpdateRejected      = "UPDATE_REJECTED"

	CodeCredentialsInvalid = "CREDENTIALS_INVALID"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"

	CodeAuditFilterInvalid = "AUDIT_FILTER_INVALID"

	CodeRequestInvalid = "REQUEST_INVALID"

	CodeNotFound = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "Something went wrong",

		// Company errors
		CodeCompanyNameEmpty:  "Company name cannot be empty",
		CodeCompanyTaxIDEmpty: "Company tax ID cannot be empty",

		// Branch errors
		CodeBranchNameEmpty:      "Branch name cannot be empty",
		CodeBranchCompanyIDEmpty: "Company ID is required for branch",

		// Warehouse errors
		CodeWarehouseNameEmpty:       "Warehouse name cannot be empty",
		CodeWarehouseCompanyIDEmpty:  "Company ID is required for warehouse",
		CodeWarehouseInvalidCapacity: "Warehouse capacity cannot be negative",

		// Manager errors
		CodeManagerNameEmpty:      "Manager name cannot be empty",
		CodeManagerEmailEmpty:     "Manager email cannot be empty",
		CodeManagerBranchIDEmpty:  "Branch ID is required for manager",
		CodeManagerCompanyIDEmpty: "Company ID is required for manager",

		// Supplier errors
		CodeSupplierNameEmpty:      "Supplier name cannot be empty",
		CodeSupplierCompanyIDEmpty: "Company ID is required for supplier",

		// Customer errors
		CodeCustomerNameEmpty:      "Customer name cannot be empty",
		CodeCustomerCompanyIDEmpty: "Company ID is required for customer",

		// Guarded workflow errors
		CodeConfirmNameEmpty:    "Type the exact name to confirm",
		CodeConfirmNameMismatch: "The name does not match",
		CodePasswordEmpty:       "Password is required",
		CodePasswordTooShort:    "Password must be at least {{.MinLength}} characters",
		CodeReasonTooShort:      "The reason must be at least {{.MinLength}} characters",
		CodeConfirmInFlight:     "A confirmation is already in progress",
		CodeDeleteRejected:      "The deletion could not be completed",
		CodeUpdateRejected:      "The update could not be completed",

		// Auth errors
		CodeCredentialsInvalid: "Invalid email or password",
		CodeTokenInvalid:       "Session is invalid, sign in again",
		CodeTokenExpired:       "Session has expired, sign in again",
		CodeUnauthorized:       "Sign in to continue",
		CodeForbidden:          "You do not have access to this resource",

		// Audit errors
		CodeAuditFilterInvalid: "The audit filter expression is invalid",

		CodeRequestInvalid: "The request could not be understood",

		// Storage errors
		CodeNotFound: "The requested record was not found",
	},
}

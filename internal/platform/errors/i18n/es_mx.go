package i18n

var esMXCatalog = &Catalog{
	locale: "es-MX",
	messages: map[Code]string{
		CodeUnknown: "Algo salió mal",

		// Company errors
		CodeCompanyNameEmpty:  "El nombre de la empresa no puede estar vacío",
		CodeCompanyTaxIDEmpty: "El RFC de la empresa no puede estar vacío",

		// Branch errors
		CodeBranchNameEmpty:      "El nombre de la sucursal no puede estar vacío",
		CodeBranchCompanyIDEmpty: "Se requiere la empresa para la sucursal",

		// Warehouse errors
		CodeWarehouseNameEmpty:       "El nombre de la bodega no puede estar vacío",
		CodeWarehouseCompanyIDEmpty:  "Se requiere la empresa para la bodega",
		CodeWarehouseInvalidCapacity: "La capacidad de la bodega no puede ser negativa",

		// Manager errors
		CodeManagerNameEmpty:      "El nombre del gerente no puede estar vacío",
		CodeManagerEmailEmpty:     "El correo del gerente no puede estar vacío",
		CodeManagerBranchIDEmpty:  "Se requiere la sucursal para el gerente",
		CodeManagerCompanyIDEmpty: "Se requiere la empresa para el gerente",

		// Supplier errors
		CodeSupplierNameEmpty:      "El nombre del proveedor no puede estar vacío",
		CodeSupplierCompanyIDEmpty: "Se requiere la empresa para el proveedor",

		// Customer errors
		CodeCustomerNameEmpty:      "El nombre del cliente no puede estar vacío",
		CodeCustomerCompanyIDEmpty: "Se requiere la empresa para el cliente",

		// Guarded workflow errors
		CodeConfirmNameEmpty:    "Escribe el nombre exacto para confirmar",
		CodeConfirmNameMismatch: "El nombre no coincide",
		CodePasswordEmpty:       "La contraseña es obligatoria",
		CodePasswordTooShort:    "La contraseña debe tener al menos {{.MinLength}} caracteres",
		CodeReasonTooShort:      "El motivo debe tener al menos {{.MinLength}} caracteres",
		CodeConfirmInFlight:     "Ya hay una confirmación en curso",
		CodeDeleteRejected:      "No se pudo completar la eliminación",
		CodeUpdateRejected:      "No se pudo completar la actualización",

		// Auth errors
		CodeCredentialsInvalid: "Correo o contraseña incorrectos",
		CodeTokenInvalid:       "La sesión no es válida, inicia sesión de nuevo",
		CodeTokenExpired:       "La sesión ha expirado, inicia sesión de nuevo",
		CodeUnauthorized:       "Inicia sesión para continuar",
		CodeForbidden:          "No tienes acceso a este recurso",

		// Audit errors
		CodeAuditFilterInvalid: "La expresión de filtro de auditoría no es válida",

		CodeRequestInvalid: "No se pudo interpretar la solicitud",

		// Storage errors
		CodeNotFound: "No se encontró el registro solicitado",
	},
}

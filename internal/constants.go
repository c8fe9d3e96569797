package internal

const (
	COOKIE_LOCAL_STORAGE_NAME = "billed_local_storage"

	// LOCAL_STORAGE_USER_KEY is the key holding the current user record.
	LOCAL_STORAGE_USER_KEY = "user"
)

const (
	ROUTE_LOGIN    = "/"
	ROUTE_LOGOUT   = "/logout"
	ROUTE_BILLS    = "/employee/bills"
	ROUTE_NEW_BILL = "/employee/bill/new"
)

// STORAGE_KEY_PREFIX prefixes every attachment key in file storage.
const STORAGE_KEY_PREFIX = "justificatifs/"

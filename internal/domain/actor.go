package domain

// ActingUser identifies the person behind a session. IdentityKey is the login
// username and keys the visibility table; EmployeeID is the person's employee
// code used by the own-records fallback rule.
type ActingUser struct {
	IdentityKey string `json:"identity_key"`
	EmployeeID  string `json:"employee_id"`
}

package request

// SignInRequest is the request body for signing in
type SignInRequest struct {
	Identity string `json:"identity"`
}

// SetMarkRequest is the request body for choosing a mark
type SetMarkRequest struct {
	Mark string `json:"mark"`
}

// MoveRequest is the request body for playing a cell. Index is a pointer so
// a missing field is distinguishable from cell 0.
type MoveRequest struct {
	Index *int `json:"index"`
}

package handler

import "encoding/json"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createBugRequest struct {
	Title       string `json:"title"       validate:"required,min=5"`
	Description string `json:"description" validate:"required,min=10"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	AssignedTo  *uint  `json:"assigned_to"`
}

// optionalUserID distinguishes an absent assigned_to field from an
// explicit null: only admins may change assignment through the general
// update, and null means "clear".
type optionalUserID struct {
	set   bool
	value *uint
}

func (o *optionalUserID) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		o.value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.value = &id
	return nil
}

// updateBugRequest is the partial-update payload: nil pointer fields were
// not supplied and stay untouched.
type updateBugRequest struct {
	Title       *string        `json:"title"       validate:"omitempty,min=5"`
	Description *string        `json:"description" validate:"omitempty,min=10"`
	Priority    *string        `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	Status      *string        `json:"status"      validate:"omitempty,oneof=open in_progress closed"`
	AssignedTo  optionalUserID `json:"assigned_to"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress closed"`
}

type assignBugRequest struct {
	AssignedTo *uint `json:"assigned_to"`
}

package leave

import "encoding/json"

type listEnvelope struct {
	Leaves []LeaveRequest `json:"leaves"`
}

// NormalizeList decodes a listing response into one canonical shape. The API
// sometimes wraps the collection as {"leaves": [...]} and sometimes returns
// the bare array; a missing or null collection becomes an empty slice so the
// presentation layer never sees nil.
func NormalizeList(body []byte) ([]LeaveRequest, error) {
	if len(body) == 0 {
		return []LeaveRequest{}, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Leaves != nil {
		return envelope.Leaves, nil
	}

	var bare []LeaveRequest
	if err := json.Unmarshal(body, &bare); err == nil {
		if bare == nil {
			return []LeaveRequest{}, nil
		}
		return bare, nil
	}

	// A wrapper without the leaves field (or with it null) is an empty
	// listing, not an error, as long as the body was valid JSON.
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, err
	}
	return []LeaveRequest{}, nil
}

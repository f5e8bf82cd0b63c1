package instagram

import "encoding/json"

// Settings is the serialized client state: cookies, device info and auth
// tokens. The broker persists and restores it verbatim and never interprets
// it beyond the single helper below.
type Settings json.RawMessage

// MarshalJSON passes the blob through unchanged.
func (s Settings) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// UnmarshalJSON stores the raw blob.
func (s *Settings) UnmarshalJSON(data []byte) error {
	*s = append((*s)[:0], data...)
	return nil
}

// SessionID digs the authorization session id out of the blob, returning ""
// when absent or unreadable. The restore policy treats a present session id
// as a strong signal that the session is still worth keeping.
func (s Settings) SessionID() string {
	if len(s) == 0 {
		return ""
	}
	var probe struct {
		AuthorizationData struct {
			SessionID string `json:"sessionid"`
		} `json:"authorization_data"`
	}
	if err := json.Unmarshal(s, &probe); err != nil {
		return ""
	}
	return probe.AuthorizationData.SessionID
}

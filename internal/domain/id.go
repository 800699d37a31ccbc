package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// SessionID принимает в JSON и число, и числовую строку ("12").
type SessionID int64

func (id *SessionID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParseSessionID(s)
		if err != nil {
			return err
		}
		*id = SessionID(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.New("sessionId must be an integer")
	}
	*id = SessionID(v)
	return nil
}

func (id SessionID) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(id), 10), nil
}

// ParseSessionID разбирает id из пути или строки; допустимы только положительные целые.
func ParseSessionID(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidSessionID
	}
	return v, nil
}

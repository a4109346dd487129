package dto

import (
	"fmt"
	"strconv"
)

// Ids travel as strings: snowflake ids do not fit in a JavaScript number.

func OptionalID(id *int64) *string {
	if id == nil {
		return nil
	}
	s := strconv.FormatInt(*id, 10)
	return &s
}

func ParseOptionalID(s *string) (*int64, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", *s)
	}
	return &id, nil
}

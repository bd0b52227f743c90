package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Username     string     `json:"username" bson:"username"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Gender       Gender     `json:"gender" bson:"gender"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

var genderNames = [...]string{"Unspecified", "Male", "Female"}

func (g Gender) String() string {
	if g < GenderUnspecified || g > GenderFemale {
		return "Gender(" + strconv.Itoa(int(g)) + ")"
	}
	return genderNames[g]
}

func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	for i, name := range genderNames {
		if strings.EqualFold(s, name) {
			*g = Gender(i)
			return nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(genderNames) {
		*g = Gender(n)
		return nil
	}
	return fmt.Errorf("unknown gender %q", s)
}

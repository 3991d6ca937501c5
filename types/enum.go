/*
 * Copyright 2025 codelayer.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Enum is a declarative enumeration member. Members are declared on an
// EnumSet; the zero Enum is the illegal sentinel. Enums are stored in the
// database by name and marshal to JSON as their name.
type Enum struct {
	number int
	name   string
	desc   string
}

var _ BaseEnum = Enum{}

// Illegal is the sentinel returned for lookups that do not match any member.
var Illegal = Enum{IllegalValue, IllegalName, IllegalDesc}

func (e Enum) Number() int { return e.number }

func (e Enum) Name() string {
	if e.name == "" {
		return IllegalName
	}
	return e.name
}

func (e Enum) String() string { return e.Name() }

func (e Enum) Desc() string {
	if e.desc == "" {
		return IllegalDesc
	}
	return e.desc
}

func (e Enum) IsValid() bool {
	return e.name != "" && e.name != IllegalName && e.number != IllegalValue
}

// Value implements driver.Valuer; the member name is stored.
func (e Enum) Value() (driver.Value, error) {
	if !e.IsValid() {
		return nil, nil
	}
	return e.name, nil
}

// Scan implements sql.Scanner. Scanning resolves the name only; use
// EnumSet.FromName to recover number and description for a declared set.
func (e *Enum) Scan(value interface{}) error {
	if value == nil {
		*e = Illegal
		return nil
	}
	switch v := value.(type) {
	case string:
		*e = Enum{IllegalValue, v, ""}
	case []byte:
		*e = Enum{IllegalValue, string(v), ""}
	default:
		return fmt.Errorf("cannot scan %T into Enum", value)
	}
	return nil
}

// MarshalJSON writes the member name.
func (e Enum) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Name())
}

// UnmarshalJSON reads a member name; number/description resolution is done
// through the declaring EnumSet.
func (e *Enum) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*e = Enum{IllegalValue, name, ""}
	return nil
}

// EnumSet declares the members of one enumeration and provides lookups.
type EnumSet struct {
	name     string
	members  []Enum
	byName   map[string]Enum
	byNumber map[int]Enum
}

// NewEnumSet creates an empty enumeration with the given set name.
func NewEnumSet(name string) *EnumSet {
	return &EnumSet{
		name:     name,
		byName:   make(map[string]Enum),
		byNumber: make(map[int]Enum),
	}
}

// Declare adds a member to the set and returns it. Declaring a duplicate
// name or number panics; sets are meant to be declared once at init time.
func (s *EnumSet) Declare(number int, name, desc string) Enum {
	if name == "" || name == IllegalName || number == IllegalValue {
		panic(fmt.Sprintf("enum %s: illegal member %q (%d)", s.name, name, number))
	}
	if _, ok := s.byName[name]; ok {
		panic(fmt.Sprintf("enum %s: duplicate member name %q", s.name, name))
	}
	if _, ok := s.byNumber[number]; ok {
		panic(fmt.Sprintf("enum %s: duplicate member number %d", s.name, number))
	}
	e := Enum{number, name, desc}
	s.members = append(s.members, e)
	s.byName[name] = e
	s.byNumber[number] = e
	return e
}

// Name returns the set name.
func (s *EnumSet) Name() string { return s.name }

// FromName returns the member with the given name, or Illegal.
func (s *EnumSet) FromName(name string) Enum {
	if e, ok := s.byName[name]; ok {
		return e
	}
	return Illegal
}

// FromNumber returns the member with the given number, or Illegal.
func (s *EnumSet) FromNumber(number int) Enum {
	if e, ok := s.byNumber[number]; ok {
		return e
	}
	return Illegal
}

// Resolve re-binds a scanned or unmarshalled enum to its declared member,
// restoring number and description. Unknown names resolve to Illegal.
func (s *EnumSet) Resolve(e Enum) Enum {
	return s.FromName(e.name)
}

// Contains reports whether the enum is a declared member of the set.
func (s *EnumSet) Contains(e Enum) bool {
	m, ok := s.byName[e.name]
	return ok && m.number == e.number
}

// Values returns the members in declaration order.
func (s *EnumSet) Values() []Enum {
	out := make([]Enum, len(s.members))
	copy(out, s.members)
	return out
}

// Names returns the member names in declaration order.
func (s *EnumSet) Names() []string {
	out := make([]string, len(s.members))
	for i, e := range s.members {
		out[i] = e.name
	}
	return out
}

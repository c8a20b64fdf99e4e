package roster

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidRole is returned for anything other than "tutor" or "student".
	ErrInvalidRole = errors.New("roster: invalid role")
	// ErrInvalidSubject is returned for subjects that are blank or contain non-letters.
	ErrInvalidSubject = errors.New("roster: invalid subject")
	// ErrInvalidProfile is the sentinel wrapped by ProfileError.
	ErrInvalidProfile = errors.New("roster: invalid profile")
)

// Role tags a person as one side of a tutoring pair.
type Role string

const (
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

// ParseRole accepts "tutor" or "student" in any case.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleTutor:
		return RoleTutor, nil
	case RoleStudent:
		return RoleStudent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
}

// IsValid reports whether r is one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleTutor || r == RoleStudent
}

// Opposite returns the counterpart role; invalid roles map to "".
func (r Role) Opposite() Role {
	switch r {
	case RoleTutor:
		return RoleStudent
	case RoleStudent:
		return RoleTutor
	}
	return ""
}

// Plural returns "tutors" or "students".
func (r Role) Plural() string {
	if !r.IsValid() {
		return "persons"
	}
	return string(r) + "s"
}

// Subject is a free-text teaching category made of letters and spaces.
type Subject string

var subjectPattern = regexp.MustCompile(`^[A-Za-z]+(?: +[A-Za-z]+)*$`)

// ParseSubject trims and validates a subject name.
func ParseSubject(value string) (Subject, error) {
	trimmed := strings.TrimSpace(value)
	if err := profileValidator.Var(trimmed, "required,subjectname"); err != nil {
		return "", fmt.Errorf("%w: %q, subjects may only contain letters and spaces", ErrInvalidSubject, value)
	}
	return Subject(trimmed), nil
}

// EqualFold compares subjects ignoring case.
func (s Subject) EqualFold(other Subject) bool {
	return strings.EqualFold(string(s), string(other))
}

func (s Subject) String() string { return string(s) }

// Profile carries the identity fields of a person plus its labels.
type Profile struct {
	Name    string   `validate:"required,max=100,personname"`
	Phone   string   `validate:"required,min=3,max=20,number"`
	Email   string   `validate:"required,email"`
	Address string   `validate:"required,max=200"`
	Tags    []string `validate:"dive,required,alphanum"`
}

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("subjectname", func(fl validator.FieldLevel) bool {
		return subjectPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

var profileMessages = map[string]string{
	"Name":    "names should only contain letters, digits and spaces",
	"Phone":   "phone numbers should only contain digits and be at least 3 digits long",
	"Email":   "emails should be of the format local-part@domain",
	"Address": "addresses can take any value but should not be blank",
	"Tags":    "tags should be alphanumeric",
}

// ProfileError lists every invalid profile field.
type ProfileError struct {
	Fields map[string]string
}

func (e *ProfileError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalidProfile.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", ErrInvalidProfile, strings.Join(names, ", "))
}

func (e *ProfileError) Unwrap() error { return ErrInvalidProfile }

// Normalize trims every field and returns a validated, de-duplicated copy.
func (p Profile) Normalize() (Profile, error) {
	out := Profile{
		Name:    strings.TrimSpace(p.Name),
		Phone:   strings.TrimSpace(p.Phone),
		Email:   strings.TrimSpace(p.Email),
		Address: strings.TrimSpace(p.Address),
		Tags:    normalizeTags(p.Tags),
	}
	if err := profileValidator.Struct(out); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return Profile{}, err
		}
		pErr := &ProfileError{Fields: make(map[string]string, len(vErrs))}
		for _, fieldErr := range vErrs {
			field := fieldErr.StructField()
			if strings.HasPrefix(field, "Tags[") {
				field = "Tags"
			}
			pErr.Fields[strings.ToLower(field)] = profileMessages[field]
		}
		return Profile{}, pErr
	}
	return out, nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

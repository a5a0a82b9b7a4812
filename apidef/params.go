package apidef

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Field names a credential field in the auth payloads. It is used to erase a field when testing how
// the API reacts to incomplete input.
type Field string

const (
	FieldEmail    Field = "email"
	FieldName     Field = "name"
	FieldPassword Field = "password"
)

// RegistrationParams is the body of POST /auth/register and PATCH /auth/user.
//
// Undefined fields are left out of the JSON document entirely; a missing field and an empty string
// are different inputs as far as the API is concerned.
type RegistrationParams struct {
	Email    ldvalue.OptionalString
	Name     ldvalue.OptionalString
	Password ldvalue.OptionalString
}

// NewRegistrationParams returns params with all three fields defined.
func NewRegistrationParams(email, name, password string) RegistrationParams {
	return RegistrationParams{
		Email:    ldvalue.NewOptionalString(email),
		Name:     ldvalue.NewOptionalString(name),
		Password: ldvalue.NewOptionalString(password),
	}
}

// Without returns a copy with the given fields erased.
func (p RegistrationParams) Without(fields ...Field) RegistrationParams {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			p.Email = ldvalue.OptionalString{}
		case FieldName:
			p.Name = ldvalue.OptionalString{}
		case FieldPassword:
			p.Password = ldvalue.OptionalString{}
		}
	}
	return p
}

// WithEmail, WithName and WithPassword return a copy with one field set. Starting from the zero value,
// they build the partial bodies that PATCH /auth/user accepts.
func (p RegistrationParams) WithEmail(email string) RegistrationParams {
	p.Email = ldvalue.NewOptionalString(email)
	return p
}

func (p RegistrationParams) WithName(name string) RegistrationParams {
	p.Name = ldvalue.NewOptionalString(name)
	return p
}

func (p RegistrationParams) WithPassword(password string) RegistrationParams {
	p.Password = ldvalue.NewOptionalString(password)
	return p
}

func (p RegistrationParams) MarshalJSON() ([]byte, error) {
	b := ldvalue.ObjectBuild()
	setIfDefined(b, FieldEmail, p.Email)
	setIfDefined(b, FieldName, p.Name)
	setIfDefined(b, FieldPassword, p.Password)
	return b.Build().MarshalJSON()
}

// LoginParams is the body of POST /auth/login.
type LoginParams struct {
	Email    ldvalue.OptionalString
	Password ldvalue.OptionalString
}

func NewLoginParams(email, password string) LoginParams {
	return LoginParams{
		Email:    ldvalue.NewOptionalString(email),
		Password: ldvalue.NewOptionalString(password),
	}
}

// Without returns a copy with the given fields erased. FieldName is ignored since logins carry no name.
func (p LoginParams) Without(fields ...Field) LoginParams {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			p.Email = ldvalue.OptionalString{}
		case FieldPassword:
			p.Password = ldvalue.OptionalString{}
		}
	}
	return p
}

func (p LoginParams) MarshalJSON() ([]byte, error) {
	b := ldvalue.ObjectBuild()
	setIfDefined(b, FieldEmail, p.Email)
	setIfDefined(b, FieldPassword, p.Password)
	return b.Build().MarshalJSON()
}

// OrderParams is the body of POST /orders.
type OrderParams struct {
	Ingredients []string `json:"ingredients"`
}

func setIfDefined(b ldvalue.ObjectBuilder, name Field, value ldvalue.OptionalString) {
	if value.IsDefined() {
		b.Set(string(name), value.AsValue())
	}
}

package identityv1

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformed is returned when a Struct does not have the expected shape.
var ErrMalformed = errors.New("malformed message")

const (
	fieldEmail           = "email"
	fieldName            = "name"
	fieldNewsletterOptIn = "newsletterOptIn"
	fieldRedirect        = "redirect"
	fieldWebsiteURL      = "websiteUrl"
	fieldExists          = "exists"
	fieldUser            = "user"
	fieldOrganization    = "organization"
	fieldGithubHandle    = "githubHandle"
	fieldTwitterHandle   = "twitterHandle"
	fieldWebsite         = "website"
	fieldID              = "id"
	fieldStatus          = "status"
)

type CheckExistenceRequest struct {
	Email string
}

type CheckExistenceResponse struct {
	Exists bool
}

type RequestSigninLinkRequest struct {
	Email      string
	Redirect   string
	WebsiteURL string
}

// RequestSigninLinkResponse carries an optional URL the client should
// navigate to directly instead of waiting for the email.
type RequestSigninLinkResponse struct {
	Redirect string
}

type User struct {
	Email           string
	Name            string
	NewsletterOptIn bool
}

type Organization struct {
	Name          string
	GithubHandle  string
	TwitterHandle string
	Website       string
}

// CreateAccountRequest carries the user and, optionally, an organization.
// A nil Organization is encoded as a missing field.
type CreateAccountRequest struct {
	User         User
	Organization *Organization
	Redirect     string
	WebsiteURL   string
}

type CreateAccountResponse struct {
	ID    string
	Email string
	Name  string
}

type PingRequest struct{}

type PingResponse struct {
	Status string
}

func (m *CheckExistenceRequest) Marshal() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldEmail: m.Email})
}

func (m *CheckExistenceRequest) Unmarshal(s *structpb.Struct) (err error) {
	m.Email, err = stringField(s, fieldEmail)
	return err
}

func (m *CheckExistenceResponse) Marshal() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldExists: m.Exists})
}

func (m *CheckExistenceResponse) Unmarshal(s *structpb.Struct) (err error) {
	m.Exists, err = boolField(s, fieldExists)
	return err
}

func (m *RequestSigninLinkRequest) Marshal() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldEmail:      m.Email,
		fieldRedirect:   m.Redirect,
		fieldWebsiteURL: m.WebsiteURL,
	})
}

func (m *RequestSigninLinkRequest) Unmarshal(s *structpb.Struct) error {
	var err error
	if m.Email, err = stringField(s, fieldEmail); err != nil {
		return err
	}
	if m.Redirect, err = stringField(s, fieldRedirect); err != nil {
		return err
	}
	m.WebsiteURL, err = stringField(s, fieldWebsiteURL)
	return err
}

func (m *RequestSigninLinkResponse) Marshal() (*structpb.Struct, error) {
	fields := map[string]any{}
	if m.Redirect != "" {
		fields[fieldRedirect] = m.Redirect
	}
	return structpb.NewStruct(fields)
}

func (m *RequestSigninLinkResponse) Unmarshal(s *structpb.Struct) (err error) {
	m.Redirect, err = stringField(s, fieldRedirect)
	return err
}

func (m *CreateAccountRequest) Marshal() (*structpb.Struct, error) {
	fields := map[string]any{
		fieldUser: map[string]any{
			fieldEmail:           m.User.Email,
			fieldName:            m.User.Name,
			fieldNewsletterOptIn: m.User.NewsletterOptIn,
		},
		fieldRedirect:   m.Redirect,
		fieldWebsiteURL: m.WebsiteURL,
	}
	if o := m.Organization; o != nil {
		fields[fieldOrganization] = map[string]any{
			fieldName:          o.Name,
			fieldGithubHandle:  o.GithubHandle,
			fieldTwitterHandle: o.TwitterHandle,
			fieldWebsite:       o.Website,
		}
	}
	return structpb.NewStruct(fields)
}

func (m *CreateAccountRequest) Unmarshal(s *structpb.Struct) error {
	user, err := structField(s, fieldUser)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: %s is required", ErrMalformed, fieldUser)
	}
	if m.User.Email, err = stringField(user, fieldEmail); err != nil {
		return err
	}
	if m.User.Name, err = stringField(user, fieldName); err != nil {
		return err
	}
	if m.User.NewsletterOptIn, err = boolField(user, fieldNewsletterOptIn); err != nil {
		return err
	}

	org, err := structField(s, fieldOrganization)
	if err != nil {
		return err
	}
	m.Organization = nil
	if org != nil {
		o := &Organization{}
		if o.Name, err = stringField(org, fieldName); err != nil {
			return err
		}
		if o.GithubHandle, err = stringField(org, fieldGithubHandle); err != nil {
			return err
		}
		if o.TwitterHandle, err = stringField(org, fieldTwitterHandle); err != nil {
			return err
		}
		if o.Website, err = stringField(org, fieldWebsite); err != nil {
			return err
		}
		m.Organization = o
	}

	if m.Redirect, err = stringField(s, fieldRedirect); err != nil {
		return err
	}
	m.WebsiteURL, err = stringField(s, fieldWebsiteURL)
	return err
}

func (m *CreateAccountResponse) Marshal() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldID:    m.ID,
		fieldEmail: m.Email,
		fieldName:  m.Name,
	})
}

func (m *CreateAccountResponse) Unmarshal(s *structpb.Struct) error {
	var err error
	if m.ID, err = stringField(s, fieldID); err != nil {
		return err
	}
	if m.Email, err = stringField(s, fieldEmail); err != nil {
		return err
	}
	m.Name, err = stringField(s, fieldName)
	return err
}

func (m *PingRequest) Marshal() (*structpb.Struct, error) {
	return &structpb.Struct{}, nil
}

func (m *PingRequest) Unmarshal(*structpb.Struct) error {
	return nil
}

func (m *PingResponse) Marshal() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldStatus: m.Status})
}

func (m *PingResponse) Unmarshal(s *structpb.Struct) (err error) {
	m.Status, err = stringField(s, fieldStatus)
	return err
}

// lookup returns the value under key, treating explicit nulls as absent.
func lookup(s *structpb.Struct, key string) *structpb.Value {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return v
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v := lookup(s, key)
	if v == nil {
		return "", nil
	}
	if _, ok := v.GetKind().(*structpb.Value_StringValue); !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrMalformed, key)
	}
	return v.GetStringValue(), nil
}

func boolField(s *structpb.Struct, key string) (bool, error) {
	v := lookup(s, key)
	if v == nil {
		return false, nil
	}
	if _, ok := v.GetKind().(*structpb.Value_BoolValue); !ok {
		return false, fmt.Errorf("%w: %s must be a bool", ErrMalformed, key)
	}
	return v.GetBoolValue(), nil
}

func structField(s *structpb.Struct, key string) (*structpb.Struct, error) {
	v := lookup(s, key)
	if v == nil {
		return nil, nil
	}
	if _, ok := v.GetKind().(*structpb.Value_StructValue); !ok {
		return nil, fmt.Errorf("%w: %s must be an object", ErrMalformed, key)
	}
	return v.GetStructValue(), nil
}

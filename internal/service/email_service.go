package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"text/template"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/pkg/errs"
)

// Generator: текстовая модель; nil означает, что AI не настроен.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmailInput struct {
	Goal           string  `json:"goal"`
	Contact        string  `json:"contact"`
	Context        string  `json:"context"`
	UserName       string  `json:"userName"`
	UserUniversity string  `json:"userUniversity"`
	UserRole       *string `json:"userRole"`
}

var (
	errMissingEmailFields = errs.New(errs.ErrInvalidInput, "Missing required fields: goal and contact are required")
	errMissingCredentials = errs.New(errs.ErrInvalidInput, "Missing user credentials: userName and userUniversity are required")
)

var emailPrompt = template.Must(template.New("email").Parse(
	`You are an expert professional networking consultant. Please draft a professional, warm, and engaging email for a student named {{.UserName}} from {{.UserUniversity}}.

IMPORTANT: Use the actual values provided below. DO NOT use placeholder text like [Your Name], [Your University], etc. Write the email as if it's already complete with real information.

Student Information:
- Name: {{.UserName}}
- University: {{.UserUniversity}}
- Role: {{.Role}}

Email Details:
- Goal: {{.Goal}}
- Contact Person: {{.Contact}}
- Additional Context: {{.ContextOrDefault}}

Please create an email that:
1. Has a clear, professional subject line (use actual content, not placeholders)
2. Opens with a warm, personalized greeting using {{.UserName}}'s actual name
3. Clearly states {{.UserName}}'s purpose and goal as a student from {{.UserUniversity}} (use the actual university name)
4. Shows genuine interest in the contact person's work/experience
5. Makes a specific, reasonable request
6. Is concise but comprehensive (150-200 words)
7. Has a professional closing with {{.UserName}}'s actual name and {{.UserUniversity}} affiliation
8. Maintains a respectful and enthusiastic tone
9. Sounds authentic and personal, as if written by {{.UserName}} themselves

CRITICAL: Write the complete email with all information filled in. Do not leave any brackets, placeholders, or incomplete sections. The email should be ready to send immediately.

Format the email with proper line breaks and structure. Make it sound natural and conversational while remaining professional. The email should reflect {{.UserName}}'s perspective as a student from {{.UserUniversity}}.`))

type promptData struct {
	EmailInput
	Role             string
	ContextOrDefault string
}

type EmailService struct {
	gen Generator
}

func NewEmailService(gen Generator) *EmailService {
	return &EmailService{gen: gen}
}

func (s *EmailService) Generate(ctx context.Context, in EmailInput) (string, error) {
	if strings.TrimSpace(in.Goal) == "" || strings.TrimSpace(in.Contact) == "" {
		return "", errMissingEmailFields
	}
	if strings.TrimSpace(in.UserName) == "" || strings.TrimSpace(in.UserUniversity) == "" {
		return "", errMissingCredentials
	}
	if s.gen == nil {
		return "", domain.ErrGeneratorDisabled
	}

	prompt, err := BuildEmailPrompt(in)
	if err != nil {
		return "", err
	}
	out, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamAuth) || errors.Is(err, errs.ErrUpstreamQuota) {
			return "", err
		}
		return "", errs.Wrap(errs.ErrUpstream, "Failed to generate email. Please try again.", err)
	}
	return out, nil
}

func BuildEmailPrompt(in EmailInput) (string, error) {
	d := promptData{EmailInput: in, Role: "Student", ContextOrDefault: in.Context}
	if in.UserRole != nil && strings.TrimSpace(*in.UserRole) != "" {
		d.Role = *in.UserRole
	}
	if strings.TrimSpace(d.ContextOrDefault) == "" {
		d.ContextOrDefault = "No additional context provided"
	}
	var buf bytes.Buffer
	if err := emailPrompt.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go-applyninja-automation/internal/models"
)

// Client is the interface for AI providers
type Client interface {
	// ExtractProfile turns raw resume text into a structured candidate profile.
	ExtractProfile(ctx context.Context, resumeText string) (*models.CandidateProfile, error)

	// AnswerQuestion answers a single form question from the candidate profile.
	// priorError carries the page's rejection message when a first answer
	// failed validation, so the model can fix the format.
	AnswerQuestion(ctx context.Context, question string, profile *models.CandidateProfile, priorError string) (string, error)

	// ChooseOption picks the best entry from options for a choice question.
	// The returned text is the model's raw pick; callers match it against the
	// option set themselves.
	ChooseOption(ctx context.Context, question string, options []string, profile *models.CandidateProfile) (string, error)
}

// buildExtractionPrompt creates the system instruction for resume parsing
func buildExtractionPrompt() string {
	return `You are an AI Recruiter. Extract structured data from this resume.

Return ONLY a valid JSON object. Be concise to save tokens.
Fields:
- name (string)
- email (string)
- phone (string)
- skills (list of technical skills)
- years_of_experience (int)
- job_role (inferred target title)
- tech_stack (list of frameworks/tools)
- education (list of strings, e.g. "Degree - University")
- certifications (list of strings)
- summary (max 30 words)

Do not include markdown formatting, just the raw JSON object.`
}

// buildAnswerPrompt combines profile, question and an optional validation error
func buildAnswerPrompt(question string, profile *models.CandidateProfile, priorError string) string {
	profileJSON, _ := json.Marshal(profile)

	errorContext := ""
	if priorError != "" {
		errorContext = fmt.Sprintf("\nPREVIOUS ERROR: The form rejected the last answer with: '%s'. Fix the format (e.g., remove letters, use integer).", priorError)
	}

	return fmt.Sprintf(`You are an AI Job Applicant. Answer the question concisely based on the candidate's profile.

Profile: %s
Question: "%s"%s

Rules:
- Return ONLY the answer text.
- For Yes/No questions, return "Yes" or "No".
- For numeric questions, return just the number.
- If asked about notice period, always return the integer 30 (no text like "days").
- If asked about current CTC/Salary, return the integer 1200000.
- If asked about expected CTC/Salary, return the integer 2000000.
- If you do not know the answer to a numeric question, return the integer 0.
- If the answer is missing from the profile, use your best judgment to provide a POSITIVE, plausible answer (e.g., "Yes", "Intermediate", "2").
- Do not leave it empty.`, profileJSON, question, errorContext)
}

// buildChoicePrompt asks the model to pick one option from a list
func buildChoicePrompt(question string, options []string, profile *models.CandidateProfile) string {
	profileJSON, _ := json.Marshal(profile)
	optionsJSON, _ := json.Marshal(options)

	return fmt.Sprintf(`You are an AI Job Applicant. Choose the best option from the provided list for the question based on the candidate's profile.

Profile: %s
Question: "%s"
Options: %s

Rules:
- Return ONLY the exact string of the selected option.
- If the question is about notice period, prefer "Immediate", "1 Month", or "30 Days" if not specified in profile.
- If the answer is missing, select the most positive/beneficial option (e.g., "Yes", "Native or Bilingual", "Proficient").
- Select the most logical option.`, profileJSON, question, optionsJSON)
}

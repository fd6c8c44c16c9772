package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchPrompt creates the candidate-scoring instruction. The rubric is
// fixed: 0-100 with 100 a perfect fit, resume content only, and a strict
// two-field JSON response.
func (pb *PromptBuilder) BuildMatchPrompt(jobDescription, requiredSkills string) string {
	return fmt.Sprintf(`You are an experienced Technical HR Manager. Evaluate the provided resume against the job description and required skills below.

JOB DESCRIPTION:
%s

REQUIRED SKILLS:
%s

INSTRUCTIONS:
- Score the match from 0 to 100 (100 = perfect fit).
- Base your evaluation only on the content of the resume and the job description/skills.
- Do not use any external knowledge or make assumptions.
- Respond only with a valid JSON object containing two keys: "score" (integer) and "explanation" (string). The explanation should briefly summarise the fit and, if the score is low, point out the key missing skills or mismatches.

RESUME:`, jobDescription, requiredSkills)
}

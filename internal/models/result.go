package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type EvaluateRequest struct {
	JobID            string `json:"job_id" validate:"required,uuid"`
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
	ApplicationID    string `json:"application_id,omitempty"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Result       *MatchResultData `json:"result,omitempty"`
	ErrorKind    *string          `json:"error_kind,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
}

type MatchResultData struct {
	MatchScore  int    `json:"match_score"`
	Explanation string `json:"explanation"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	// FaceStepRequired reports whether a reference face exists, so the
	// client knows to continue with POST /face/verify.
	FaceStepRequired bool `json:"face_step_required"`
}

// Face endpoints accept single still frames as base64-encoded JPEG/PNG.

type FaceRegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Frame string `json:"frame" validate:"required"`
}

type FaceVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Frame string `json:"frame" validate:"required"`
}

type FaceVerifyResponse struct {
	Matched    bool    `json:"matched"`
	Similarity float64 `json:"similarity"`
	Threshold  float64 `json:"threshold"`
}

type LivenessRequest struct {
	OpenFrame   string `json:"open_frame" validate:"required"`
	ClosedFrame string `json:"closed_frame" validate:"required"`
}

type LivenessResponse struct {
	Live    bool    `json:"live"`
	EAROpen float64 `json:"ear_open"`
	EARShut float64 `json:"ear_closed"`
	Margin  float64 `json:"margin"`
}

type CreateJobRequest struct {
	Title          string `json:"title" validate:"required"`
	Category       string `json:"category"`
	Description    string `json:"description" validate:"required"`
	Requirements   string `json:"requirements"`
	SkillsRequired string `json:"skills_required"`
	Location       string `json:"location"`
	SalaryRange    string `json:"salary_range"`
}

type ApplyRequest struct {
	EmployeeID       string `json:"employee_id" validate:"required,uuid"`
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
	CoverLetter      string `json:"cover_letter"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SendMessageRequest struct {
	SenderID      string `json:"sender_id" validate:"required,uuid"`
	RecipientID   string `json:"recipient_id" validate:"required,uuid"`
	ApplicationID string `json:"application_id,omitempty"`
	Body          string `json:"body" validate:"required"`
}

type CreateJobRequestRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
}

type UpdateJobRequestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
	Status      string `json:"status"`
}

type ExpressInterestRequest struct {
	EmployerID string `json:"employer_id" validate:"required,uuid"`
	Message    string `json:"message" validate:"required"`
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

type fakeApplicationRepo struct {
	apps       map[uuid.UUID]*models.Application
	createErr  error
	statusErrs error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
}

func (f *fakeApplicationRepo) Create(app *models.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.apps[app.ID] = app
	return nil
}

func (f *fakeApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepo) FindByJob(jobID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, app := range f.apps {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) FindByEmployee(employeeID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, app := range f.apps {
		if app.EmployeeID == employeeID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error {
	if f.statusErrs != nil {
		return f.statusErrs
	}
	app, ok := f.apps[id]
	if !ok {
		return repositories.ErrNotFound
	}
	app.Status = status
	return nil
}

func (f *fakeApplicationRepo) UpdateMatch(id uuid.UUID, matchScore int, explanation string) error {
	app, ok := f.apps[id]
	if !ok {
		return repositories.ErrNotFound
	}
	app.MatchScore = &matchScore
	app.MatchExplanation = &explanation
	return nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*models.Job)}
}

func (f *fakeJobRepo) Create(job *models.Job) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return job, nil
}

func (f *fakeJobRepo) FindOpen(limit int) ([]models.Job, error) {
	var out []models.Job
	for _, job := range f.jobs {
		out = append(out, *job)
	}
	return out, nil
}

func (f *fakeJobRepo) FindByEmployer(employerID uuid.UUID) ([]models.Job, error) {
	var out []models.Job
	for _, job := range f.jobs {
		if job.EmployerID == employerID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Update(job *models.Job) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) Delete(id uuid.UUID) error {
	if _, ok := f.jobs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.jobs, id)
	return nil
}

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*models.Document)}
}

func (f *fakeDocumentRepo) Create(document *models.Document) error {
	f.docs[document.ID] = document
	return nil
}

func (f *fakeDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocumentRepo) FindByUploader(uploaderID uuid.UUID) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range f.docs {
		if doc.UploadedBy == uploaderID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

type fakeEvaluationRepo struct {
	evals     map[uuid.UUID]*models.Evaluation
	createErr error
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evals: make(map[uuid.UUID]*models.Evaluation)}
}

func (f *fakeEvaluationRepo) Create(eval *models.Evaluation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.evals[eval.ID] = eval
	return nil
}

func (f *fakeEvaluationRepo) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	eval, ok := f.evals[id]
	if !ok {
		return nil, fmt.Errorf("evaluation not found")
	}
	return eval, nil
}

func (f *fakeEvaluationRepo) UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error {
	eval, ok := f.evals[id]
	if !ok {
		return fmt.Errorf("evaluation not found")
	}
	eval.Status = status
	return nil
}

func (f *fakeEvaluationRepo) UpdateResult(id uuid.UUID, matchScore int, explanation string) error {
	eval, ok := f.evals[id]
	if !ok {
		return fmt.Errorf("evaluation not found")
	}
	eval.Status = models.StatusCompleted
	eval.MatchScore = &matchScore
	eval.Explanation = &explanation
	return nil
}

func (f *fakeEvaluationRepo) UpdateError(id uuid.UUID, kind models.ErrorKind, errorMsg string) error {
	eval, ok := f.evals[id]
	if !ok {
		return fmt.Errorf("evaluation not found")
	}
	eval.Status = models.StatusFailed
	return nil
}

func (f *fakeEvaluationRepo) FindPendingJobs(limit int) ([]models.Evaluation, error) {
	var out []models.Evaluation
	for _, eval := range f.evals {
		if eval.Status == models.StatusQueued {
			out = append(out, *eval)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created   []*models.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByUser(userID uuid.UUID, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkAllRead(userID uuid.UUID) error {
	return nil
}

type fakeWorker struct {
	enqueued []uuid.UUID
}

func (f *fakeWorker) Start(ctx context.Context)   {}
func (f *fakeWorker) Stop()                       {}
func (f *fakeWorker) EnqueueJob(evalID uuid.UUID) { f.enqueued = append(f.enqueued, evalID) }

type applicationFixture struct {
	appRepo   *fakeApplicationRepo
	jobRepo   *fakeJobRepo
	docRepo   *fakeDocumentRepo
	evalRepo  *fakeEvaluationRepo
	notifRepo *fakeNotificationRepo
	worker    *fakeWorker
	app       *fiber.App
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		appRepo:   newFakeApplicationRepo(),
		jobRepo:   newFakeJobRepo(),
		docRepo:   newFakeDocumentRepo(),
		evalRepo:  newFakeEvaluationRepo(),
		notifRepo: &fakeNotificationRepo{},
		worker:    &fakeWorker{},
	}

	handler := NewApplicationHandler(f.appRepo, f.jobRepo, f.docRepo, f.evalRepo, f.notifRepo, f.worker, nil)

	f.app = fiber.New()
	f.app.Post("/jobs/:id/apply", handler.HandleApply)
	f.app.Get("/applications", handler.HandleListApplications)
	f.app.Put("/applications/:id/status", handler.HandleUpdateStatus)

	return f
}

func TestHandleApplyQueuesEvaluation(t *testing.T) {
	f := newApplicationFixture()

	job := &models.Job{ID: uuid.New()}
	require.NoError(t, f.jobRepo.Create(job))
	doc := &models.Document{ID: uuid.New()}
	require.NoError(t, f.docRepo.Create(doc))

	body, err := json.Marshal(models.ApplyRequest{
		EmployeeID:       uuid.New().String(),
		ResumeDocumentID: doc.ID.String(),
		CoverLetter:      "I have done this work before.",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Len(t, f.appRepo.apps, 1)
	assert.Len(t, f.evalRepo.evals, 1)
	assert.Len(t, f.worker.enqueued, 1)
}

func TestHandleApplySurvivesEvaluationCreateFailure(t *testing.T) {
	f := newApplicationFixture()
	f.evalRepo.createErr = fmt.Errorf("connection refused")

	job := &models.Job{ID: uuid.New()}
	require.NoError(t, f.jobRepo.Create(job))
	doc := &models.Document{ID: uuid.New()}
	require.NoError(t, f.docRepo.Create(doc))

	body, err := json.Marshal(models.ApplyRequest{
		EmployeeID:       uuid.New().String(),
		ResumeDocumentID: doc.ID.String(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	// The application is accepted even when queueing the evaluation fails.
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Len(t, f.appRepo.apps, 1)
	assert.Empty(t, f.worker.enqueued)
}

func TestHandleApplyUnknownJob(t *testing.T) {
	f := newApplicationFixture()

	doc := &models.Document{ID: uuid.New()}
	require.NoError(t, f.docRepo.Create(doc))

	body, err := json.Marshal(models.ApplyRequest{
		EmployeeID:       uuid.New().String(),
		ResumeDocumentID: doc.ID.String(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/jobs/"+uuid.New().String()+"/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleUpdateStatusCreatesNotification(t *testing.T) {
	f := newApplicationFixture()

	app := &models.Application{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Status:     models.ApplicationApplied,
	}
	require.NoError(t, f.appRepo.Create(app))

	body, err := json.Marshal(models.UpdateApplicationStatusRequest{Status: "shortlisted"})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/applications/"+app.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, models.ApplicationShortlisted, app.Status)
	require.Len(t, f.notifRepo.created, 1)
	assert.Equal(t, "application_status", f.notifRepo.created[0].Type)
	assert.Equal(t, app.EmployeeID, f.notifRepo.created[0].UserID)
}

func TestHandleUpdateStatusSurvivesNotificationFailure(t *testing.T) {
	f := newApplicationFixture()
	f.notifRepo.createErr = fmt.Errorf("connection refused")

	app := &models.Application{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Status:     models.ApplicationApplied,
	}
	require.NoError(t, f.appRepo.Create(app))

	body, err := json.Marshal(models.UpdateApplicationStatusRequest{Status: "rejected"})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/applications/"+app.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	// The status change sticks; the notification is best-effort.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ApplicationRejected, app.Status)
}

func TestHandleUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newApplicationFixture()

	app := &models.Application{ID: uuid.New(), EmployeeID: uuid.New()}
	require.NoError(t, f.appRepo.Create(app))

	body, err := json.Marshal(models.UpdateApplicationStatusRequest{Status: "promoted"})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/applications/"+app.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

package core

import (
	"context"
	"database/sql"
	"time"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/messaging"
)

// In-memory fakes shared by the service tests.

type fakePolicyRepo struct {
	policy *model.CompanyPolicy
	err    error
}

func (f *fakePolicyRepo) Get(ctx context.Context) (*model.CompanyPolicy, error) {
	return f.policy, f.err
}

func (f *fakePolicyRepo) Save(ctx context.Context, p *model.CompanyPolicy) error {
	f.policy = p
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]*model.AttendanceRecord // key: employeeID + "|" + date
	counts  model.AttendanceCounts
	nextID  int64
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*model.AttendanceRecord, error) {
	rec, ok := f.records[employeeID+"|"+date]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeAttendanceRepo) CreateCheckIn(ctx context.Context, rec *model.AttendanceRecord) (int64, error) {
	f.nextID++
	cp := *rec
	cp.ID = f.nextID
	f.records[rec.EmployeeID+"|"+rec.Date] = &cp
	return f.nextID, nil
}

func (f *fakeAttendanceRepo) UpdateCheckOut(ctx context.Context, id int64, checkOutAt time.Time, address, photoURL string, workedHours float64, status model.AttendanceStatus) error {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.CheckOutAt = &checkOutAt
			rec.CheckOutAddress = address
			rec.CheckOutPhotoURL = photoURL
			rec.WorkedHours = workedHours
			rec.Status = status
		}
	}
	return nil
}

func (f *fakeAttendanceRepo) ListMonth(ctx context.Context, employeeID, month string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && len(rec.Date) >= len(month) && rec.Date[:len(month)] == month {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountMonthStatuses(ctx context.Context, employeeID, month string) (model.AttendanceCounts, error) {
	return f.counts, nil
}

type fakeBlobStore struct {
	uploads int
	err     error
}

func (f *fakeBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return "https://blobs.test/" + key, nil
}

type fakeSalaryRepo struct {
	records map[int64]*model.SalaryRecord
	byKey   map[string]int64 // employeeID + "|" + month
	nextID  int64
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{
		records: make(map[int64]*model.SalaryRecord),
		byKey:   make(map[string]int64),
	}
}

func (f *fakeSalaryRepo) Get(ctx context.Context, employeeID, month string) (*model.SalaryRecord, error) {
	id, ok := f.byKey[employeeID+"|"+month]
	if !ok {
		return nil, nil
	}
	cp := *f.records[id]
	return &cp, nil
}

func (f *fakeSalaryRepo) GetByID(ctx context.Context, id int64) (*model.SalaryRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeSalaryRepo) Upsert(ctx context.Context, rec *model.SalaryRecord) (int64, error) {
	key := rec.EmployeeID + "|" + rec.Month
	id, ok := f.byKey[key]
	if !ok {
		f.nextID++
		id = f.nextID
		f.byKey[key] = id
	}
	cp := *rec
	cp.ID = id
	f.records[id] = &cp
	return id, nil
}

func (f *fakeSalaryRepo) UpdateSyncStatus(ctx context.Context, id int64, status model.SyncStatus, retryCount int) error {
	if rec, ok := f.records[id]; ok {
		rec.SyncStatus = status
		rec.SyncRetryCount = retryCount
	}
	return nil
}

func (f *fakeSalaryRepo) UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error {
	if rec, ok := f.records[id]; ok {
		rec.EmailStatus = status
		rec.EmailRetryCount = retryCount
	}
	return nil
}

type fakeProducer struct {
	payrollEvents []messaging.SalarySyncEvent
	emailEvents   []messaging.EmailEvent
	publishErr    error
}

func (f *fakeProducer) PublishPayroll(ctx context.Context, body interface{}) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.payrollEvents = append(f.payrollEvents, body.(messaging.SalarySyncEvent))
	return nil
}

func (f *fakeProducer) PublishEmail(ctx context.Context, body interface{}) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.emailEvents = append(f.emailEvents, body.(messaging.EmailEvent))
	return nil
}

type fakeProgressRepo struct {
	progress map[string]*model.LessonProgress // key: userID + "|" + lessonID
	upserts  int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{progress: make(map[string]*model.LessonProgress)}
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID, lessonID string) (*model.LessonProgress, error) {
	p, ok := f.progress[userID+"|"+lessonID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, p *model.LessonProgress) error {
	f.upserts++
	cp := *p
	f.progress[p.UserID+"|"+p.LessonID] = &cp
	return nil
}

type fakeQuizRepo struct {
	results map[string]*model.QuizResult // key: userID + "|" + lessonID
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{results: make(map[string]*model.QuizResult)}
}

func (f *fakeQuizRepo) Get(ctx context.Context, userID, lessonID string) (*model.QuizResult, error) {
	r, ok := f.results[userID+"|"+lessonID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeQuizRepo) Create(ctx context.Context, r *model.QuizResult) error {
	cp := *r
	f.results[r.UserID+"|"+r.LessonID] = &cp
	return nil
}

func (f *fakeQuizRepo) Delete(ctx context.Context, userID, lessonID string) error {
	delete(f.results, userID+"|"+lessonID)
	return nil
}

type fakeCourseRepo struct {
	members map[string]*model.CourseMember // key: courseID + "|" + userID
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{members: make(map[string]*model.CourseMember)}
}

func (f *fakeCourseRepo) GetMember(ctx context.Context, courseID, userID string) (*model.CourseMember, error) {
	m, ok := f.members[courseID+"|"+userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeCourseRepo) RequestEnrollment(ctx context.Context, courseID, userID string) error {
	key := courseID + "|" + userID
	if _, ok := f.members[key]; ok {
		return nil
	}
	f.members[key] = &model.CourseMember{CourseID: courseID, UserID: userID, State: model.EnrollmentPending}
	return nil
}

func (f *fakeCourseRepo) Approve(ctx context.Context, courseID, userID string) error {
	m, ok := f.members[courseID+"|"+userID]
	if !ok || m.State != model.EnrollmentPending {
		return sql.ErrNoRows
	}
	m.State = model.EnrollmentEnrolled
	return nil
}

func (f *fakeCourseRepo) RemoveMember(ctx context.Context, courseID, userID string) error {
	delete(f.members, courseID+"|"+userID)
	return nil
}

func (f *fakeCourseRepo) ListMembers(ctx context.Context, courseID string, state model.EnrollmentState) ([]model.CourseMember, error) {
	var out []model.CourseMember
	for _, m := range f.members {
		if m.CourseID == courseID && m.State == state {
			out = append(out, *m)
		}
	}
	return out, nil
}

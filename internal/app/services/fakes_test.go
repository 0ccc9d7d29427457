package services

import (
	"context"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. Each fake mirrors the
// error contract of its pgx-backed counterpart.

type fakeUserStore struct {
	nextID    int64
	users     map[int64]*models.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) add(email, passwordHash, name string, active bool) *models.User {
	f.nextID++
	u := &models.User{
		ID:       f.nextID,
		Email:    strings.ToLower(email),
		Password: passwordHash,
		Name:     name,
		IsActive: active,
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	email := strings.ToLower(user.Email)
	for _, u := range f.users {
		if u.Email == email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.Email = email
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	lowered := strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == lowered {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserStore) SetActive(_ context.Context, userID int64, active bool) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

type fakeRoleStore struct {
	grants map[int64][]models.Role
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{grants: make(map[int64][]models.Role)}
}

func (f *fakeRoleStore) Grant(_ context.Context, userID int64, role models.Role) error {
	for _, r := range f.grants[userID] {
		if r == role {
			return apperrors.ErrRoleAlreadyAssigned
		}
	}
	f.grants[userID] = append(f.grants[userID], role)
	return nil
}

func (f *fakeRoleStore) Revoke(_ context.Context, userID int64, role models.Role) error {
	roles := f.grants[userID]
	for i, r := range roles {
		if r == role {
			f.grants[userID] = append(roles[:i], roles[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeRoleStore) HasRole(_ context.Context, userID int64, role models.Role) (bool, error) {
	for _, r := range f.grants[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoleStore) GetRolesForUser(_ context.Context, userID int64) ([]models.Role, error) {
	return f.grants[userID], nil
}

func (f *fakeRoleStore) ListGrants(_ context.Context, role models.Role) ([]*models.UserRole, map[int64]*models.User, error) {
	var out []*models.UserRole
	ids := make([]int64, 0, len(f.grants))
	for id := range f.grants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		for _, r := range f.grants[id] {
			if role == "" || r == role {
				out = append(out, &models.UserRole{UserID: id, Role: r})
			}
		}
	}
	return out, make(map[int64]*models.User), nil
}

type fakeAdminStore struct {
	nextID   int64
	byUserID map[int64]*models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{byUserID: make(map[int64]*models.Admin)}
}

func (f *fakeAdminStore) Create(_ context.Context, admin *models.Admin) error {
	f.nextID++
	admin.ID = f.nextID
	f.byUserID[admin.UserID] = admin
	return nil
}

func (f *fakeAdminStore) GetByUserID(_ context.Context, userID int64) (*models.Admin, error) {
	a, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return a, nil
}

type fakeTrainerStore struct {
	nextID   int64
	trainers map[int64]*models.Trainer
	skills   map[int64][]int64
}

func newFakeTrainerStore() *fakeTrainerStore {
	return &fakeTrainerStore{
		trainers: make(map[int64]*models.Trainer),
		skills:   make(map[int64][]int64),
	}
}

func (f *fakeTrainerStore) add(name, email string, userID *int64) *models.Trainer {
	f.nextID++
	t := &models.Trainer{
		ID:        f.nextID,
		Name:      name,
		Email:     strings.ToLower(email),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	f.trainers[t.ID] = t
	return t
}

func (f *fakeTrainerStore) Upsert(_ context.Context, trainer *models.Trainer) error {
	lowered := strings.ToLower(trainer.Email)
	for _, existing := range f.trainers {
		if existing.Email == lowered {
			existing.Name = trainer.Name
			existing.PhoneNumber = trainer.PhoneNumber
			existing.Bio = trainer.Bio
			*trainer = *existing
			return nil
		}
	}
	f.nextID++
	trainer.ID = f.nextID
	trainer.Email = lowered
	trainer.CreatedAt = time.Now()
	copied := *trainer
	f.trainers[trainer.ID] = &copied
	return nil
}

// loadSkills mirrors the production store, which returns trainers with
// their skill relation populated.
func (f *fakeTrainerStore) loadSkills(t *models.Trainer) *models.Trainer {
	t.Skills = nil
	for _, id := range f.skills[t.ID] {
		t.Skills = append(t.Skills, &models.Skill{ID: id, IsActive: true})
	}
	return t
}

func (f *fakeTrainerStore) GetByID(_ context.Context, id int64) (*models.Trainer, error) {
	t, ok := f.trainers[id]
	if !ok {
		return nil, apperrors.ErrTrainerNotFound
	}
	return f.loadSkills(t), nil
}

func (f *fakeTrainerStore) GetByEmail(_ context.Context, email string) (*models.Trainer, error) {
	lowered := strings.ToLower(email)
	for _, t := range f.trainers {
		if t.Email == lowered {
			return f.loadSkills(t), nil
		}
	}
	return nil, apperrors.ErrTrainerNotFound
}

func (f *fakeTrainerStore) GetByUserID(_ context.Context, userID int64) (*models.Trainer, error) {
	for _, t := range f.trainers {
		if t.UserID != nil && *t.UserID == userID {
			return f.loadSkills(t), nil
		}
	}
	return nil, apperrors.ErrTrainerNotFound
}

func (f *fakeTrainerStore) GetAll(_ context.Context) ([]*models.Trainer, error) {
	out := make([]*models.Trainer, 0, len(f.trainers))
	for _, t := range f.trainers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTrainerStore) UpdateProfile(_ context.Context, trainer *models.Trainer) error {
	existing, ok := f.trainers[trainer.ID]
	if !ok {
		return apperrors.ErrTrainerNotFound
	}
	existing.Name = trainer.Name
	existing.PhoneNumber = trainer.PhoneNumber
	existing.Bio = trainer.Bio
	return nil
}

func (f *fakeTrainerStore) LinkUser(_ context.Context, trainerID, userID int64) error {
	t, ok := f.trainers[trainerID]
	if !ok {
		return apperrors.ErrTrainerNotFound
	}
	t.UserID = &userID
	return nil
}

func (f *fakeTrainerStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.trainers[id]; !ok {
		return apperrors.ErrTrainerNotFound
	}
	delete(f.trainers, id)
	delete(f.skills, id)
	return nil
}

func (f *fakeTrainerStore) GetSkills(_ context.Context, trainerID int64) ([]*models.Skill, error) {
	skills := make([]*models.Skill, 0, len(f.skills[trainerID]))
	for _, id := range f.skills[trainerID] {
		skills = append(skills, &models.Skill{ID: id, IsActive: true})
	}
	return skills, nil
}

func (f *fakeTrainerStore) AssignSkill(_ context.Context, trainerID, skillID int64) error {
	for _, id := range f.skills[trainerID] {
		if id == skillID {
			return nil
		}
	}
	f.skills[trainerID] = append(f.skills[trainerID], skillID)
	return nil
}

func (f *fakeTrainerStore) RemoveSkill(_ context.Context, trainerID, skillID int64) error {
	ids := f.skills[trainerID]
	for i, id := range ids {
		if id == skillID {
			f.skills[trainerID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePendingTrainerStore struct {
	nextID  int64
	pending map[int64]*models.PendingTrainer
}

func newFakePendingTrainerStore() *fakePendingTrainerStore {
	return &fakePendingTrainerStore{pending: make(map[int64]*models.PendingTrainer)}
}

func (f *fakePendingTrainerStore) Create(_ context.Context, p *models.PendingTrainer) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.pending[p.ID] = p
	return nil
}

func (f *fakePendingTrainerStore) GetByID(_ context.Context, id int64) (*models.PendingTrainer, error) {
	p, ok := f.pending[id]
	if !ok {
		return nil, apperrors.ErrInvitationNotFound
	}
	return p, nil
}

func (f *fakePendingTrainerStore) List(_ context.Context, status models.PendingTrainerStatus) ([]*models.PendingTrainer, error) {
	var out []*models.PendingTrainer
	for _, p := range f.pending {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePendingTrainerStore) UpdateStatus(_ context.Context, id int64, status models.PendingTrainerStatus) error {
	p, ok := f.pending[id]
	if !ok {
		return apperrors.ErrInvitationNotFound
	}
	p.Status = status
	return nil
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens         map[string]*storedToken
	revokeAllCalls int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	t, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiry, t.revoked, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	f.revokeAllCalls++
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (f *fakeTokenStore) DeleteExpiredTokens(_ context.Context) (int64, error) {
	var n int64
	for token, t := range f.tokens {
		if t.expiry.Before(time.Now()) {
			delete(f.tokens, token)
			n++
		}
	}
	return n, nil
}

func (f *fakeTokenStore) liveTokenCount(userID int64) int {
	n := 0
	for _, t := range f.tokens {
		if t.userID == userID && !t.revoked {
			n++
		}
	}
	return n
}

type fakeSkillStore struct {
	nextID int64
	skills map[int64]*models.Skill
}

func newFakeSkillStore() *fakeSkillStore {
	return &fakeSkillStore{skills: make(map[int64]*models.Skill)}
}

func (f *fakeSkillStore) add(name, code string, active bool) *models.Skill {
	f.nextID++
	s := &models.Skill{ID: f.nextID, Name: name, Code: code, IsActive: active}
	f.skills[s.ID] = s
	return s
}

func (f *fakeSkillStore) Create(_ context.Context, skill *models.Skill) error {
	for _, s := range f.skills {
		if s.Code == skill.Code || s.Name == skill.Name {
			return apperrors.ErrSkillAlreadyExists
		}
	}
	f.nextID++
	skill.ID = f.nextID
	f.skills[skill.ID] = skill
	return nil
}

func (f *fakeSkillStore) GetByID(_ context.Context, id int64) (*models.Skill, error) {
	s, ok := f.skills[id]
	if !ok {
		return nil, apperrors.ErrSkillNotFound
	}
	return s, nil
}

func (f *fakeSkillStore) GetAll(_ context.Context, activeOnly bool) ([]*models.Skill, error) {
	var out []*models.Skill
	for _, s := range f.skills {
		if !activeOnly || s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSkillStore) Update(_ context.Context, skill *models.Skill) error {
	if _, ok := f.skills[skill.ID]; !ok {
		return apperrors.ErrSkillNotFound
	}
	f.skills[skill.ID] = skill
	return nil
}

func (f *fakeSkillStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.skills[id]; !ok {
		return apperrors.ErrSkillNotFound
	}
	delete(f.skills, id)
	return nil
}

func (f *fakeSkillStore) SetActive(_ context.Context, id int64, active bool) error {
	s, ok := f.skills[id]
	if !ok {
		return apperrors.ErrSkillNotFound
	}
	s.IsActive = active
	return nil
}

type fakeDepartmentStore struct {
	nextID int64
	depts  map[int64]*models.Department
}

func newFakeDepartmentStore() *fakeDepartmentStore {
	return &fakeDepartmentStore{depts: make(map[int64]*models.Department)}
}

func (f *fakeDepartmentStore) add(name, code string) *models.Department {
	f.nextID++
	d := &models.Department{ID: f.nextID, Name: name, Code: code}
	f.depts[d.ID] = d
	return d
}

func (f *fakeDepartmentStore) Create(_ context.Context, dept *models.Department) error {
	for _, d := range f.depts {
		if d.Code == dept.Code || d.Name == dept.Name {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	f.nextID++
	dept.ID = f.nextID
	f.depts[dept.ID] = dept
	return nil
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := f.depts[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentStore) GetAll(_ context.Context) ([]*models.Department, error) {
	var out []*models.Department
	for _, d := range f.depts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDepartmentStore) Update(_ context.Context, dept *models.Department) error {
	if _, ok := f.depts[dept.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	f.depts[dept.ID] = dept
	return nil
}

func (f *fakeDepartmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.depts[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.depts, id)
	return nil
}

type fakeApplicationStore struct {
	nextID    int64
	apps      map[int64]*models.StudentApplication
	createErr error
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[int64]*models.StudentApplication)}
}

func (f *fakeApplicationStore) add(app *models.StudentApplication) *models.StudentApplication {
	f.nextID++
	app.ID = f.nextID
	f.apps[app.ID] = app
	return app
}

func (f *fakeApplicationStore) Create(_ context.Context, app *models.StudentApplication) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	app.ID = f.nextID
	app.CreatedAt = time.Now()
	f.apps[app.ID] = app
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.StudentApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationStore) List(_ context.Context, filter repositories.ApplicationFilter) ([]*models.StudentApplication, error) {
	var out []*models.StudentApplication
	for _, app := range f.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if filter.SkillID != 0 && app.SkillID != filter.SkillID {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApplicationStore) ListBySkills(_ context.Context, skillIDs []int64) ([]*models.StudentApplication, error) {
	var out []*models.StudentApplication
	for _, app := range f.apps {
		for _, id := range skillIDs {
			if app.SkillID == id {
				out = append(out, app)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus, adminNotes string) (models.ApplicationStatus, error) {
	app, ok := f.apps[id]
	if !ok {
		return "", apperrors.ErrApplicationNotFound
	}
	previous := app.Status
	app.Status = status
	app.AdminNotes = adminNotes
	return previous, nil
}

func (f *fakeApplicationStore) SetReceiptURL(_ context.Context, id int64, url string) error {
	app, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.EspReceiptURL = &url
	return nil
}

type decisionEmail struct {
	toEmail string
	skill   string
	status  models.ApplicationStatus
}

type fakeEmailService struct {
	decisions []decisionEmail
	invites   []string
	sendErr   error
}

func (f *fakeEmailService) SendDecisionEmail(toEmail, _, skillName string, status models.ApplicationStatus) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.decisions = append(f.decisions, decisionEmail{toEmail: toEmail, skill: skillName, status: status})
	return nil
}

func (f *fakeEmailService) SendTrainerInviteEmail(toEmail, _ string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.invites = append(f.invites, toEmail)
	return nil
}

type fakeFileStorage struct {
	nextID  int
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.nextID++
	url := "/uploads/" + path + "/" + fileHeader.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeFileStorage) Open(_ string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("receipt-bytes")), nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeFileStorage) GetFullPath(fileURL string) string {
	return fileURL
}

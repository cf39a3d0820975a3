package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/teenfaith/teenfaith/internal/auth"
	"github.com/teenfaith/teenfaith/internal/config"
	"github.com/teenfaith/teenfaith/internal/content"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/nav"
	"github.com/teenfaith/teenfaith/internal/registry"
	"github.com/teenfaith/teenfaith/internal/scheduler"
	"github.com/teenfaith/teenfaith/internal/session"
	"github.com/teenfaith/teenfaith/internal/storage/mock"
)

type memStore struct {
	values  map[any]any
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[any]any{}}
}

func (m *memStore) Get(key any) any      { return m.values[key] }
func (m *memStore) Set(key any, val any) { m.values[key] = val }
func (m *memStore) Delete(key any)       { delete(m.values, key) }
func (m *memStore) Save() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	return nil
}

type fakeMotivator struct {
	name, mood string
}

func (f *fakeMotivator) Request(_ context.Context, userName, mood string) string {
	f.name, f.mood = userName, mood
	return "keep going " + userName
}

type ControllerTestSuite struct {
	suite.Suite
	kv        *mock.MockKV
	reg       *registry.Registry
	motivator *fakeMotivator
	ctrl      *Controller
	store     *memStore
	ctx       context.Context
}

func (s *ControllerTestSuite) SetupTest() {
	s.kv = mock.NewMockKV()
	s.reg = registry.New(s.kv)
	s.motivator = &fakeMotivator{}
	authCfg := &config.AuthConfig{
		TrustRequestedRole: true,
		SeededAdmin:        &config.SeededAdminConfig{Enabled: true, Identifier: "Consi"},
	}
	catalog := content.Default()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	s.ctrl = New(
		auth.New(s.reg, authCfg),
		s.reg,
		catalog,
		content.NewDaily(catalog, now),
		s.motivator,
		&config.AvatarConfig{Provider: config.AvatarProviderDicebear},
	)
	s.ctrl.now = func() time.Time { return now }
	s.store = newMemStore()
	s.ctx = context.Background()
}

func (s *ControllerTestSuite) register(name, email string) State {
	st, err := s.ctrl.Register(s.ctx, s.store, name, email, "pw", models.RoleTeen)
	s.Require().NoError(err)
	return st
}

func (s *ControllerTestSuite) TestInitialState() {
	st := s.ctrl.State(s.store)
	s.False(st.Session.IsAuthenticated)
	s.Equal(nav.PageHome, st.Page)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	s.Equal(nav.PageLogin, v.Page)
	s.Nil(v.Home)
}

func (s *ControllerTestSuite) TestRegisterThenLogin() {
	reg := s.register("Ada Lovelace", "ada@example.com")
	s.True(reg.Session.IsAuthenticated)
	s.Equal(nav.PageHome, reg.Page)
	s.Equal(1, s.store.saves)

	_, err := s.ctrl.Logout(s.store)
	s.Require().NoError(err)

	st, err := s.ctrl.Login(s.ctx, s.store, "ada@example.com", "pw", models.RoleTeen)
	s.Require().NoError(err)
	s.Equal(reg.Session.User.ID, st.Session.User.ID)
	s.Equal(nav.PageHome, st.Page)

	restored := s.ctrl.State(s.store)
	s.Equal(st, restored)
}

func (s *ControllerTestSuite) TestLoginFailureLeavesStateUntouched() {
	s.register("Ada", "ada@example.com")
	_, err := s.ctrl.Navigate(s.store, nav.PageMusic)
	s.Require().NoError(err)
	before := s.ctrl.State(s.store)
	saves := s.store.saves

	_, err = s.ctrl.Login(s.ctx, s.store, "ada@example.com", "wrong", models.RoleTeen)
	s.ErrorIs(err, auth.ErrInvalidCredentials)
	s.Equal(before, s.ctrl.State(s.store))
	s.Equal(saves, s.store.saves)
}

func (s *ControllerTestSuite) TestSeededAdmin() {
	st, err := s.ctrl.Login(s.ctx, s.store, "Consi", "anything", models.RoleTeen)
	s.Require().NoError(err)
	s.Equal(models.User{ID: "1", Name: "Consi", Email: "Consi", Role: models.RoleAdmin}, *st.Session.User)
}

func (s *ControllerTestSuite) TestLogout() {
	s.register("Ada", "ada@example.com")

	st, err := s.ctrl.Logout(s.store)
	s.Require().NoError(err)
	s.False(st.Session.IsAuthenticated)
	s.Equal(nav.PageLogin, st.Page)
	_, ok := s.store.values[session.UserKey]
	s.False(ok)

	restored := s.ctrl.State(s.store)
	s.False(restored.Session.IsAuthenticated)
	s.Equal(nav.PageLogin, restored.Page)

	// logging out twice is fine
	_, err = s.ctrl.Logout(s.store)
	s.NoError(err)
}

func (s *ControllerTestSuite) TestCorruptedSession() {
	s.store.values[session.UserKey] = "{broken"
	st := s.ctrl.State(s.store)
	s.False(st.Session.IsAuthenticated)
}

func (s *ControllerTestSuite) TestNavigateWhileLoggedOut() {
	st, err := s.ctrl.Navigate(s.store, nav.PageBible)
	s.Require().NoError(err)
	s.Equal(nav.PageBible, st.Page)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	s.Equal(nav.PageLogin, v.Page)
	s.Equal(nav.PageBible, s.ctrl.State(s.store).Page, "stored page is not reset")
}

func (s *ControllerTestSuite) TestSaveFailure() {
	s.store.saveErr = errors.New("cookie too large")
	_, err := s.ctrl.Register(s.ctx, s.store, "Ada", "ada@example.com", "pw", models.RoleTeen)
	s.Error(err)
}

func (s *ControllerTestSuite) TestHomeView() {
	s.register("Ada Lovelace", "ada@example.com")

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	s.Equal(nav.PageHome, v.Page)
	s.Require().NotNil(v.Header)
	s.Equal("Rise & Shine, Ada", v.Header.Title)
	s.Require().NotNil(v.Home)
	s.Equal("Walking in Boldness", v.Home.Devotional.Title)
	s.Equal(content.Default().GrowthChallengeTasks[0], v.Home.GrowthChallenge)
	s.Len(v.Home.Features, 3)
}

func (s *ControllerTestSuite) TestBibleView() {
	s.register("Ada", "ada@example.com")
	_, err := s.ctrl.Navigate(s.store, nav.PageBible)
	s.Require().NoError(err)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{Version: "kjv"})
	s.Require().NoError(err)
	s.Require().NotNil(v.Bible)
	s.Equal("kjv", v.Bible.Version)
	s.Len(v.Bible.Verses, 4)
	s.Equal("1st day", v.Bible.StudyPlans[0].Days[0].Label)

	v, err = s.ctrl.View(s.ctx, s.store, ViewOptions{Version: "xyz"})
	s.Require().NoError(err)
	s.Equal("niv", v.Bible.Version)
}

func (s *ControllerTestSuite) TestQuizzesViewHidesAnswers() {
	s.register("Ada", "ada@example.com")
	_, err := s.ctrl.Navigate(s.store, nav.PageQuizzes)
	s.Require().NoError(err)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	s.NotContains(string(data), "correctOption")
	s.Len(v.Quizzes, 1)
}

func (s *ControllerTestSuite) TestMotivationView() {
	s.register("Ada Lovelace", "ada@example.com")
	_, err := s.ctrl.Navigate(s.store, nav.PageMotivation)
	s.Require().NoError(err)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{Mood: "tired"})
	s.Require().NoError(err)
	s.Require().NotNil(v.Motivation)
	s.Equal("keep going Ada Lovelace", v.Motivation.Message)
	s.Equal("tired", s.motivator.mood)
}

func (s *ControllerTestSuite) TestAdminView() {
	s.register("Ada", "ada@example.com")
	_, err := s.ctrl.Navigate(s.store, nav.PageAdmin)
	s.Require().NoError(err)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	s.Empty(v.Admin.Users, "teens do not see the registry")

	_, err = s.ctrl.Login(s.ctx, s.store, "Consi", "x", models.RoleAdmin)
	s.Require().NoError(err)
	_, err = s.ctrl.Navigate(s.store, nav.PageAdmin)
	s.Require().NoError(err)

	v, err = s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	s.Len(v.Admin.Users, 1)
}

func (s *ControllerTestSuite) TestProfileView() {
	s.register("Ada", "ada@example.com")
	_, err := s.ctrl.Navigate(s.store, nav.PageProfile)
	s.Require().NoError(err)

	v, err := s.ctrl.View(s.ctx, s.store, ViewOptions{})
	s.Require().NoError(err)
	s.Equal("https://api.dicebear.com/7.x/avataaars/svg?seed=Ada", v.Profile.AvatarURL)
}

func (s *ControllerTestSuite) TestDuplicateRegistration() {
	s.register("Ada", "ada@example.com")
	s.register("Ada", "ada@example.com")

	records, err := s.reg.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)
	s.NotEqual(records[0].ID, records[1].ID)
}

func (s *ControllerTestSuite) TestGrade() {
	st := s.register("Ada", "ada@example.com")
	res, err := s.ctrl.Grade(st.Session.User, "q1", map[string]string{"q1_1": "b"})
	s.Require().NoError(err)
	s.Equal(1, res.Score)
	s.Equal(st.Session.User.ID, res.UserID)
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func TestRegisterJobs(t *testing.T) {
	catalog := content.Default()
	daily := content.NewDaily(catalog, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctrl := New(nil, nil, catalog, daily, &fakeMotivator{}, nil)
	ctrl.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	s, err := scheduler.New(context.Background())
	require.NoError(t, err)
	defer s.Stop() //nolint:errcheck

	require.NoError(t, ctrl.RegisterJobs(s))
	s.Start()

	assert.Eventually(t, func() bool {
		return daily.Today().Verse == catalog.Verses("niv")[1]
	}, 5*time.Second, 10*time.Millisecond)

	jobs := ctrl.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, DailyRotationJobID, jobs[0].ID)
	assert.Equal(t, "0 0 * * *", jobs[0].Schedule)

	require.NoError(t, ctrl.RunJob(DailyRotationJobID))
	assert.Error(t, ctrl.RunJob("unknown"))
}

func TestJobsWithoutScheduler(t *testing.T) {
	ctrl := New(nil, nil, content.Default(), nil, &fakeMotivator{}, nil)

	assert.Empty(t, ctrl.Jobs())
	assert.ErrorIs(t, ctrl.RunJob(DailyRotationJobID), ErrNoScheduler)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/internal/highlights"
	"github.com/uniconnect/ama-service/pkg/errs"
)

func strp(s string) *string { return &s }

func TestRegister_CapacityScenario(t *testing.T) {
	repo := newFakeRegistrations(domain.Session{ID: 1, Title: "S", Status: domain.StatusLive, MaxParticipants: 2, MeetingID: "m-1"})
	svc := NewRegistrationService(repo, "https://meet.google.com")
	ctx := context.Background()

	in := func(user string) RegisterInput {
		return RegisterInput{UserID: user, UserName: user, UserEmail: user + "@cu.ac.in"}
	}

	res, err := svc.Register(ctx, 1, in("A"))
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/m-1", res.MeetingLink)

	_, err = svc.Register(ctx, 1, in("A"))
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Equal(t, "User already registered for this session", errs.Message(err))

	_, err = svc.Register(ctx, 1, in("B"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, 1, in("C"))
	assert.ErrorIs(t, err, domain.ErrSessionFull)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrations(), "")

	_, err := svc.Register(context.Background(), 1, RegisterInput{UserID: "u", UserName: "n", UserEmail: "bad"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = svc.Register(context.Background(), 1, RegisterInput{UserName: "n", UserEmail: "a@b.co"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = svc.Register(context.Background(), 99, RegisterInput{UserID: "u", UserName: "n", UserEmail: "a@b.co"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRegister_StorageFailureIsPersistence(t *testing.T) {
	svc := NewRegistrationService(errRegistrations{}, "")
	_, err := svc.Register(context.Background(), 1, RegisterInput{UserID: "u", UserName: "n", UserEmail: "a@b.co"})
	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Equal(t, "Failed to register for session", errs.Message(err))
}

type errRegistrations struct{}

func (errRegistrations) Register(context.Context, *domain.Registration) (*domain.Session, error) {
	return nil, errors.New("conn refused")
}

func (errRegistrations) Participants(context.Context, int64) ([]domain.Participant, error) {
	return nil, errors.New("conn refused")
}

func newChat(t *testing.T) (*ChatService, *fakeChat) {
	t.Helper()
	sessions := &fakeSessions{byID: map[int64]domain.SessionView{
		1: {Session: domain.Session{ID: 1, Status: domain.StatusLive}},
	}}
	chat := &fakeChat{}
	return NewChatService(chat, sessions), chat
}

func TestChatSend(t *testing.T) {
	svc, chat := newChat(t)
	before := time.Now().UTC()

	msg, err := svc.Send(context.Background(), SendInput{
		SessionID: 1, UserID: "u1", UserName: "Priyanka", Message: "  hi  ", UserRole: strp("Host"),
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, "hi", msg.Message)
	assert.True(t, msg.IsHostMessage)
	assert.False(t, msg.Timestamp.Before(before))
	assert.Len(t, chat.saved, 1)
}

func TestChatSend_Errors(t *testing.T) {
	svc, chat := newChat(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, SendInput{SessionID: 1, Message: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	long := make([]rune, domain.MaxMessageRunes+1)
	for i := range long {
		long[i] = 'я'
	}
	_, err = svc.Send(ctx, SendInput{SessionID: 1, Message: string(long)})
	assert.ErrorIs(t, err, domain.ErrMessageTooLong)

	_, err = svc.Send(ctx, SendInput{SessionID: 42, Message: "hi"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	chat.err = errors.New("disk full")
	_, err = svc.Send(ctx, SendInput{SessionID: 1, Message: "hi"})
	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Equal(t, "Failed to send message", errs.Message(err))
}

func TestChatHistory_AscendingAndLimits(t *testing.T) {
	svc, _ := newChat(t)
	ctx := context.Background()
	base := time.Now()
	for i, text := range []string{"one", "two", "three"} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		_, err := svc.Send(ctx, SendInput{SessionID: 1, UserID: "u", UserName: "U", Message: text})
		require.NoError(t, err)
	}

	page, err := svc.History(ctx, 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{page[0].Message, page[1].Message, page[2].Message})

	// последние два, всё равно по возрастанию
	page, err = svc.History(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, "two", page[0].Message)
	assert.Equal(t, "three", page[1].Message)

	_, err = svc.History(ctx, 7, 10, 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_Live(t *testing.T) {
	link := "https://meet.example/x"
	f := &fakeSessions{}
	svc := NewSessionService(f, nil, "https://meet.google.com")

	_, ok, err := svc.Live(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	f.live = &domain.SessionView{Session: domain.Session{ID: 3, Status: domain.StatusLive, MeetingLink: &link}}
	v, ok, err := svc.Live(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, link, svc.MeetingLink(v.Session))

	f.err = errors.New("boom")
	_, _, err = svc.Live(context.Background())
	assert.ErrorIs(t, err, errs.ErrPersistence)
}

type fakeGen struct {
	out    string
	err    error
	prompt string
}

func (g *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.out, g.err
}

func TestEmailService(t *testing.T) {
	ctx := context.Background()
	valid := EmailInput{Goal: "internship referral", Contact: "Arjun Patel", UserName: "Rahul", UserUniversity: "CU"}

	_, err := NewEmailService(&fakeGen{}).Generate(ctx, EmailInput{UserName: "x", UserUniversity: "y"})
	assert.Equal(t, "Missing required fields: goal and contact are required", errs.Message(err))
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = NewEmailService(&fakeGen{}).Generate(ctx, EmailInput{Goal: "g", Contact: "c"})
	assert.Equal(t, "Missing user credentials: userName and userUniversity are required", errs.Message(err))

	_, err = NewEmailService(nil).Generate(ctx, valid)
	assert.ErrorIs(t, err, domain.ErrGeneratorDisabled)
	assert.Equal(t, 500, errs.ToHTTP(err))

	gen := &fakeGen{out: "Subject: Hello"}
	out, err := NewEmailService(gen).Generate(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "Subject: Hello", out)
	assert.Contains(t, gen.prompt, "a student named Rahul from CU")
	assert.Contains(t, gen.prompt, "Additional Context: No additional context provided")

	quota := errs.New(errs.ErrUpstreamQuota, "API quota exceeded. Please try again later.")
	_, err = NewEmailService(&fakeGen{err: quota}).Generate(ctx, valid)
	assert.Equal(t, 429, errs.ToHTTP(err))

	_, err = NewEmailService(&fakeGen{err: errors.New("timeout")}).Generate(ctx, valid)
	assert.Equal(t, "Failed to generate email. Please try again.", errs.Message(err))
}

type memCache struct {
	m    map[int64]domain.Highlights
	sets int
}

func (c *memCache) Get(_ context.Context, id int64) (domain.Highlights, bool, error) {
	h, ok := c.m[id]
	return h, ok, nil
}

func (c *memCache) Set(_ context.Context, id int64, h domain.Highlights) error {
	c.sets++
	c.m[id] = h
	return nil
}

func TestHighlightService_CacheAside(t *testing.T) {
	sessions := &fakeSessions{byID: map[int64]domain.SessionView{
		5: {Session: domain.Session{ID: 5, Title: "Data Science Career Roadmap"}},
	}}
	cache := &memCache{m: map[int64]domain.Highlights{}}
	svc := NewHighlightService(sessions, highlights.RuleSource{}, cache, nil)

	h, err := svc.ForSession(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, highlights.Rules("Data Science Career Roadmap", ""), h)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.ForSession(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "second call is served from cache")

	_, err = svc.ForSession(context.Background(), 6)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHighlightService_NoCache(t *testing.T) {
	sessions := &fakeSessions{byID: map[int64]domain.SessionView{
		1: {Session: domain.Session{ID: 1, Title: "pm"}},
	}}
	svc := NewHighlightService(sessions, highlights.RuleSource{}, nil, nil)
	h, err := svc.ForSession(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, h.Resource)
}

//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// fakeUoW runs the transactional callback against in-memory fakes. Each test
// inspects the fakes afterwards instead of asserting call order.
type fakeUoW struct {
	interviews *fakeInterviewRepo
	coupons    *fakeCouponRepo
	profiles   *fakeProfileRepo
	reads      *fakeReads
}

func newFakeUoW() *fakeUoW {
	reads := newFakeReads()
	return &fakeUoW{
		interviews: &fakeInterviewRepo{reads: reads},
		coupons:    &fakeCouponRepo{reads: reads},
		profiles:   &fakeProfileRepo{},
		reads:      reads,
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{uow: u})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) Interviews() shared.InterviewRepository { return u.interviews }
func (u *fakeUoW) CommandReads() shared.CommandReads      { return u.reads }

type fakeTx struct {
	uow *fakeUoW
}

func (t *fakeTx) Interviews() shared.InterviewRepository { return t.uow.interviews }
func (t *fakeTx) Coupons() shared.CouponRepository       { return t.uow.coupons }
func (t *fakeTx) Profiles() shared.ProfileRepository     { return t.uow.profiles }
func (t *fakeTx) Reads() shared.CommandReads             { return t.uow.reads }

type fakeReads struct {
	mu           sync.Mutex
	interviews   map[uuid.UUID]*interview.Interview
	jobSeekers   map[uuid.UUID]*shared.JobSeekerSnapshot
	interviewers map[uuid.UUID]*shared.InterviewerSnapshot
	coupons      map[string]*shared.CouponSnapshot
	usages       map[uuid.UUID]map[uuid.UUID]*shared.CouponUsageSnapshot
	matchingIDs  []uuid.UUID
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		interviews:   make(map[uuid.UUID]*interview.Interview),
		jobSeekers:   make(map[uuid.UUID]*shared.JobSeekerSnapshot),
		interviewers: make(map[uuid.UUID]*shared.InterviewerSnapshot),
		coupons:      make(map[string]*shared.CouponSnapshot),
		usages:       make(map[uuid.UUID]map[uuid.UUID]*shared.CouponUsageSnapshot),
	}
}

func (r *fakeReads) InterviewByID(_ context.Context, id uuid.UUID) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return nil, notFoundErr("interview not found")
	}
	return iv, nil
}

func (r *fakeReads) JobSeekerByID(_ context.Context, userID uuid.UUID) (*shared.JobSeekerSnapshot, error) {
	snap, ok := r.jobSeekers[userID]
	if !ok {
		return nil, notFoundErr("job seeker not found")
	}
	return snap, nil
}

func (r *fakeReads) InterviewerByID(_ context.Context, userID uuid.UUID) (*shared.InterviewerSnapshot, error) {
	snap, ok := r.interviewers[userID]
	if !ok {
		return nil, notFoundErr("interviewer not found")
	}
	return snap, nil
}

func (r *fakeReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	snap, ok := r.coupons[code]
	if !ok {
		return nil, notFoundErr("coupon not found")
	}
	return snap, nil
}

func (r *fakeReads) CouponUsage(_ context.Context, userID, couponID uuid.UUID) (*shared.CouponUsageSnapshot, error) {
	if byCoupon, ok := r.usages[userID]; ok {
		if usage, ok := byCoupon[couponID]; ok {
			return usage, nil
		}
	}
	return nil, notFoundErr("coupon usage not found")
}

func (r *fakeReads) ApprovedInterviewerIDsBySkills(_ context.Context, _ []string) ([]uuid.UUID, error) {
	return r.matchingIDs, nil
}

type fakeInterviewRepo struct {
	mu    sync.Mutex
	reads *fakeReads

	claimConditionalOK bool
	transitionOK       bool
	setFeedbackOK      bool
	activeSessions     []*interview.Interview
	markedExpired      []uuid.UUID
	meetingURLs        map[uuid.UUID]string
	recordingURLs      map[uuid.UUID]string
	created            []*interview.Interview
	transitions        []string
	claimCalls         int
	failClaim          error
	failCreate         error
	failSetMeetingURL  error
	failTransition     error
	failListActive     error
}

func (f *fakeInterviewRepo) Create(_ context.Context, iv *interview.Interview) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, iv)
	f.reads.interviews[iv.ID()] = iv
	return nil
}

func (f *fakeInterviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*interview.Interview, error) {
	return f.reads.InterviewByID(ctx, id)
}

func (f *fakeInterviewRepo) ClaimConditional(_ context.Context, _ *interview.Interview) (bool, error) {
	f.mu.Lock()
	f.claimCalls++
	f.mu.Unlock()
	if f.failClaim != nil {
		return false, f.failClaim
	}
	return f.claimConditionalOK, nil
}

func (f *fakeInterviewRepo) TransitionStatus(_ context.Context, _ uuid.UUID, from, to interview.Status, _ time.Time) (bool, error) {
	if f.failTransition != nil {
		return false, f.failTransition
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions = append(f.transitions, from.String()+"->"+to.String())
	return f.transitionOK, nil
}

func (f *fakeInterviewRepo) SetFeedback(_ context.Context, _ *interview.Interview) (bool, error) {
	return f.setFeedbackOK, nil
}

func (f *fakeInterviewRepo) SetMeetingURL(_ context.Context, id uuid.UUID, url string, _ time.Time) error {
	if f.failSetMeetingURL != nil {
		return f.failSetMeetingURL
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meetingURLs == nil {
		f.meetingURLs = make(map[uuid.UUID]string)
	}
	f.meetingURLs[id] = url
	return nil
}

func (f *fakeInterviewRepo) SetRecordingURL(_ context.Context, id uuid.UUID, url string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordingURLs == nil {
		f.recordingURLs = make(map[uuid.UUID]string)
	}
	f.recordingURLs[id] = url
	return nil
}

func (f *fakeInterviewRepo) MarkExpired(_ context.Context, id uuid.UUID, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedExpired = append(f.markedExpired, id)
	return true, nil
}

// SweepExpired mirrors the production bulk update: only requested rows past
// their deadline flip, so a second sweep matches nothing.
func (f *fakeInterviewRepo) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var expired int64
	for id, iv := range f.reads.interviews {
		if iv.Status() != interview.StatusRequested || !iv.IsExpiredAt(now) {
			continue
		}
		f.reads.interviews[id] = interview.Reconstruct(
			iv.ID(), iv.JobSeekerID(), iv.InterviewerID(), iv.RequestedSkills(),
			iv.Duration(), iv.Notes(), interview.StatusExpired,
			iv.ScheduledAt(), iv.ClaimedAt(), iv.ExpiresAt(), iv.IsPaid(),
			iv.PaymentID(), iv.CouponCode(), iv.Feedback(), iv.FeedbackAt(),
			iv.MeetingURL(), iv.RecordingURL(), iv.CreatedAt(), now,
		)
		expired++
	}
	return expired, nil
}

func (f *fakeInterviewRepo) ListActiveByInterviewer(_ context.Context, interviewerID uuid.UUID) ([]*interview.Interview, error) {
	if f.failListActive != nil {
		return nil, f.failListActive
	}
	var active []*interview.Interview
	for _, iv := range f.activeSessions {
		if iv.InterviewerID() != nil && *iv.InterviewerID() == interviewerID {
			active = append(active, iv)
		}
	}
	return active, nil
}

// fakeCouponRepo mirrors the guarded upsert statements: each increment
// re-checks its limit against the current ledger state, exactly like the
// conditional SQL, and mutates the snapshots the validation path reads.
type fakeCouponRepo struct {
	reads *fakeReads

	usageCalls int
	totalCalls int

	// Force a guard rejection to simulate losing a concurrent increment
	// after validation already passed.
	forceUsageReject bool
	forceTotalReject bool
}

func (f *fakeCouponRepo) IncrementUsage(_ context.Context, userID, couponID uuid.UUID, perUserLimit int, now time.Time) (bool, error) {
	f.usageCalls++
	if f.forceUsageReject {
		return false, nil
	}

	byCoupon := f.reads.usages[userID]
	if byCoupon == nil {
		byCoupon = make(map[uuid.UUID]*shared.CouponUsageSnapshot)
		f.reads.usages[userID] = byCoupon
	}
	usage := byCoupon[couponID]
	if usage == nil {
		usage = &shared.CouponUsageSnapshot{UserID: userID, CouponID: couponID}
		byCoupon[couponID] = usage
	}
	if usage.UsageCount >= perUserLimit {
		return false, nil
	}
	usage.UsageCount++
	usage.LastUsedAt = now
	return true, nil
}

func (f *fakeCouponRepo) IncrementTotalUsed(_ context.Context, couponID uuid.UUID) (bool, error) {
	f.totalCalls++
	if f.forceTotalReject {
		return false, nil
	}

	for _, snap := range f.reads.coupons {
		if snap.ID != couponID {
			continue
		}
		if snap.GlobalLimit != nil && snap.TotalUsed >= *snap.GlobalLimit {
			return false, nil
		}
		snap.TotalUsed++
		return true, nil
	}
	return false, nil
}

type fakeProfileRepo struct {
	freeUsedIncremented []uuid.UUID
	totalIncremented    []uuid.UUID
	ratingRecalced      []uuid.UUID
	settledInterviewers []uuid.UUID
	settledAmounts      []int64
	lockedInterviewers  []uuid.UUID
	completions         map[uuid.UUID]int
	earnings            map[uuid.UUID]int64
	failLock            error
}

func (f *fakeProfileRepo) LockInterviewer(_ context.Context, interviewerID uuid.UUID) error {
	if f.failLock != nil {
		return f.failLock
	}
	f.lockedInterviewers = append(f.lockedInterviewers, interviewerID)
	return nil
}

func (f *fakeProfileRepo) IncrementFreeInterviewsUsed(_ context.Context, jobSeekerID uuid.UUID) error {
	f.freeUsedIncremented = append(f.freeUsedIncremented, jobSeekerID)
	return nil
}

func (f *fakeProfileRepo) IncrementTotalInterviews(_ context.Context, jobSeekerID uuid.UUID) error {
	f.totalIncremented = append(f.totalIncremented, jobSeekerID)
	return nil
}

func (f *fakeProfileRepo) RecalcAverageRating(_ context.Context, jobSeekerID uuid.UUID) error {
	f.ratingRecalced = append(f.ratingRecalced, jobSeekerID)
	return nil
}

// SettleCompletion mirrors the production CASE: the first completion moves
// the counter but credits nothing.
func (f *fakeProfileRepo) SettleCompletion(_ context.Context, interviewerID uuid.UUID, amountCents int64) (int64, error) {
	f.settledInterviewers = append(f.settledInterviewers, interviewerID)
	f.settledAmounts = append(f.settledAmounts, amountCents)

	if f.completions == nil {
		f.completions = make(map[uuid.UUID]int)
		f.earnings = make(map[uuid.UUID]int64)
	}
	credited := amountCents
	if f.completions[interviewerID] == 0 {
		credited = 0
	}
	f.completions[interviewerID]++
	f.earnings[interviewerID] += credited
	return credited, nil
}

type fakePayments struct {
	payments map[uuid.UUID]*shared.PaymentSnapshot
}

func (f *fakePayments) GetPayment(_ context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	if f.payments == nil {
		return nil, notFoundErr("payment not found")
	}
	p, ok := f.payments[id]
	if !ok {
		return nil, notFoundErr("payment not found")
	}
	return p, nil
}

type fakeMeetings struct {
	url   string
	calls int
}

func (f *fakeMeetings) EnsureMeetingURL(_ context.Context, _, interviewID uuid.UUID, _ string) string {
	f.calls++
	if f.url != "" {
		return f.url
	}
	return "https://meet.mockomi.app/panel/" + interviewID.String()
}

type notification struct {
	userID uuid.UUID
	kind   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (f *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, kind, _, _ string, _ map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{userID: userID, kind: kind})
}

func (f *fakeNotifier) sentKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]string, len(f.sent))
	for i, n := range f.sent {
		kinds[i] = n.kind
	}
	return kinds
}

var _ shared.UnitOfWork = (*fakeUoW)(nil)
var _ commands.PaymentGateway = (*fakePayments)(nil)
var _ commands.MeetingService = (*fakeMeetings)(nil)
var _ commands.Notifier = (*fakeNotifier)(nil)

package usecase

import (
	"context"
	"sync"

	"game-review/internal/data/entity"
	"game-review/internal/data/repository"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory repository.UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by email

	// createErr, when set, is returned by Create to simulate store failures
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*entity.User, 0, len(f.users))
	for _, user := range f.users {
		found := *user
		all = append(all, &found)
	}
	return all, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Re-key in case the email changed; the row identity is the ID
	for email, existing := range f.users {
		if existing.ID == user.ID {
			delete(f.users, email)
		}
	}
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Activate(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil
	}
	user.IsActive = true
	user.ValidationCode = nil
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, user := range f.users {
		if user.ID == id {
			delete(f.users, email)
		}
	}
	return nil
}

// reviewKey identifies a review the same way the composite primary key does.
type reviewKey struct {
	userID   uuid.UUID
	gameName string
}

// fakeReviewRepo is an in-memory repository.ReviewRepository.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[reviewKey]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[reviewKey]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *review
	f.reviews[reviewKey{review.UserID, review.GameName}] = &stored
	return nil
}

func (f *fakeReviewRepo) FindByUserAndName(ctx context.Context, userID uuid.UUID, gameName string) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[reviewKey{userID, gameName}]
	if !ok {
		return nil, nil
	}
	found := *review
	return &found, nil
}

func (f *fakeReviewRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, review := range f.reviews {
		if review.UserID == userID {
			found := *review
			out = append(out, &found)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindAll(ctx context.Context) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, review := range f.reviews {
		found := *review
		out = append(out, &found)
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByName(ctx context.Context, gameName string) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, review := range f.reviews {
		if review.GameName == gameName {
			found := *review
			out = append(out, &found)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *review
	f.reviews[reviewKey{review.UserID, review.GameName}] = &stored
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, userID uuid.UUID, gameName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, reviewKey{userID, gameName})
	return nil
}

func (f *fakeReviewRepo) AverageRating(ctx context.Context, gameName string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int
	for _, review := range f.reviews {
		if review.GameName == gameName {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// fakeMailer records sent validation codes instead of talking to SMTP.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To        string
	FirstName string
	Code      string
}

func (f *fakeMailer) SendValidationCode(to, firstName, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, FirstName: firstName, Code: code})
	return nil
}

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:   newFakeUserRepo(),
		Review: newFakeReviewRepo(),
	}
}

// service/auth/authService_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanchien2973/MidAssignment-sub000/model"
	"github.com/vanchien2973/MidAssignment-sub000/util/hash"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
	setRoleFn func(ctx context.Context, id int64, role model.Role) (bool, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) { return nil, nil }

func (m *mockRepo) List(ctx context.Context) ([]model.User, error) { return nil, nil }

func (m *mockRepo) SetRole(ctx context.Context, id int64, role model.Role) (bool, error) {
	if m.setRoleFn == nil {
		return true, nil
	}
	return m.setRoleFn(ctx, id, role)
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	req := model.RegisterReq{
		FirstName: "Minh",
		LastName:  "Nguyen",
		Email:     "USER@Example.COM",
		Username:  "minh",
		Password:  "supersecret",
	}

	u, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email, "email is normalized")
	require.Equal(t, model.RoleMember, u.Role, "new accounts are members")
	require.NotEmpty(t, tok)
	require.NotEqual(t, "supersecret", u.PasswordHash)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: email, PasswordHash: hashed, Role: model.RoleLibrarian}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{Email: "lib@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.NotEmpty(t, tok)
}

func TestLogin_BadPassword(t *testing.T) {
	ctx := context.Background()
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: email, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err = svc.Login(ctx, model.LoginReq{Email: "lib@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")
	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "nobody@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRegister_CreateFails(t *testing.T) {
	boom := errors.New("db down")
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error { return boom },
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		FirstName: "A", LastName: "B", Email: "a@b.c", Username: "ab", Password: "secret1",
	})
	require.ErrorIs(t, err, boom)
}

func TestSetRole_Validation(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")
	_, err := svc.SetRole(context.Background(), 1, model.Role("superuser"))
	require.ErrorIs(t, err, ErrBadInput)

	ok, err := svc.SetRole(context.Background(), 1, model.RoleLibrarian)
	require.NoError(t, err)
	require.True(t, ok)
}

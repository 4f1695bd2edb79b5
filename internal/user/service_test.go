package user

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type mockDirectory struct {
	users       map[int64]User
	order       []int64
	lastNotRole Role
}

func newMockDirectory(users ...User) *mockDirectory {
	m := &mockDirectory{users: make(map[int64]User)}
	for _, u := range users {
		m.users[u.ID] = u
		m.order = append(m.order, u.ID)
	}
	return m
}

func (m *mockDirectory) List(context.Context) ([]User, error) {
	var out []User
	for _, id := range m.order {
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *mockDirectory) ListByRole(_ context.Context, role Role) ([]User, error) {
	var out []User
	for _, id := range m.order {
		if u := m.users[id]; u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockDirectory) ListNotRole(_ context.Context, role Role) ([]User, error) {
	m.lastNotRole = role
	var out []User
	for _, id := range m.order {
		if u := m.users[id]; u.Role != role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockDirectory) CountNotRole(_ context.Context, role Role) (int64, error) {
	m.lastNotRole = role
	var n int64
	for _, u := range m.users {
		if u.Role != role {
			n++
		}
	}
	return n, nil
}

func (m *mockDirectory) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, id := range m.order {
		if u := m.users[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *mockDirectory) Update(_ context.Context, id int64, upd Update) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	m.users[id] = u
	return &u, nil
}

func (m *mockDirectory) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func setupUserService() (*Service, *mockDirectory) {
	repo := newMockDirectory(
		User{ID: 1, Email: "a@example.com", Name: "Anna", Role: RoleUser},
		User{ID: 2, Email: "b@example.com", Name: "Ben", Role: RoleUser},
		User{ID: 3, Email: "root@example.com", Name: "Root", Role: RoleAdmin},
	)
	return NewService(repo, zap.NewNop()), repo
}

func TestNonAdminsExcludesAdmins(t *testing.T) {
	svc, repo := setupUserService()

	users, err := svc.NonAdmins(context.Background())
	if err != nil {
		t.Fatalf("NonAdmins: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 non-admins, got %d", len(users))
	}
	if repo.lastNotRole != RoleAdmin {
		t.Fatalf("listing must exclude RoleAdmin, excluded %q", repo.lastNotRole)
	}

	count, err := svc.CountNonAdmins(context.Background())
	if err != nil {
		t.Fatalf("CountNonAdmins: %v", err)
	}
	// The count and the listing go through the same predicate.
	if count != int64(len(users)) {
		t.Fatalf("count %d disagrees with listing length %d", count, len(users))
	}
}

func TestListIsStable(t *testing.T) {
	svc, _ := setupUserService()

	first, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	second, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order changed at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestByEmailMissIsNotAnError(t *testing.T) {
	svc, _ := setupUserService()

	u, err := svc.ByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestUpdateAccount(t *testing.T) {
	svc, _ := setupUserService()

	name := "Annabel"
	u, err := svc.UpdateAccount(context.Background(), 1, Update{Name: &name})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if u == nil || u.Name != "Annabel" || u.Email != "a@example.com" {
		t.Fatalf("unexpected result %+v", u)
	}

	missing, err := svc.UpdateAccount(context.Background(), 99, Update{Name: &name})
	if err != nil {
		t.Fatalf("UpdateAccount on missing id: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing id, got %+v", missing)
	}

	bad := Role("SUPERUSER")
	if _, err := svc.UpdateAccount(context.Background(), 1, Update{Role: &bad}); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestDeleteAccountIsUnconditional(t *testing.T) {
	svc, repo := setupUserService()

	if err := svc.DeleteAccount(context.Background(), 1); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, ok := repo.users[1]; ok {
		t.Fatal("user 1 still present")
	}
	// Deleting again is a no-op, not an error.
	if err := svc.DeleteAccount(context.Background(), 1); err != nil {
		t.Fatalf("second DeleteAccount: %v", err)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleUser.Valid() {
		t.Fatal("enumerated roles must be valid")
	}
	if Role("").Valid() || Role("superuser").Valid() {
		t.Fatal("unknown roles must be invalid")
	}
}

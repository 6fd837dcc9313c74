package preferences

import (
	"context"
	"testing"
	"time"

	"github.com/hitoshi/jobtrack/internal/model"
)

// --- モック ---

type mockPrefsRepo struct {
	addFn              func(ctx context.Context, prefs *model.Preferences) error
	findByIDFn         func(ctx context.Context, id int64) (*model.Preferences, error)
	updateFn           func(ctx context.Context, prefs *model.Preferences) error
	removeFn           func(ctx context.Context, prefs *model.Preferences) error
	findFirstByOwnerFn func(ctx context.Context, ownerID string) (*model.Preferences, error)
}

func (m *mockPrefsRepo) Add(ctx context.Context, prefs *model.Preferences) error {
	if m.addFn != nil {
		return m.addFn(ctx, prefs)
	}
	return nil
}
func (m *mockPrefsRepo) AddRange(ctx context.Context, prefs []*model.Preferences) error {
	return nil
}
func (m *mockPrefsRepo) Remove(ctx context.Context, prefs *model.Preferences) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, prefs)
	}
	return nil
}
func (m *mockPrefsRepo) RemoveRange(ctx context.Context, prefs []*model.Preferences) error {
	return nil
}
func (m *mockPrefsRepo) FindByID(ctx context.Context, id int64) (*model.Preferences, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPrefsRepo) ListAll(ctx context.Context) ([]*model.Preferences, error) {
	return nil, nil
}
func (m *mockPrefsRepo) Find(ctx context.Context, pred func(*model.Preferences) bool) ([]*model.Preferences, error) {
	return nil, nil
}
func (m *mockPrefsRepo) Update(ctx context.Context, prefs *model.Preferences) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, prefs)
	}
	return nil
}
func (m *mockPrefsRepo) FindFirstByOwner(ctx context.Context, ownerID string) (*model.Preferences, error) {
	if m.findFirstByOwnerFn != nil {
		return m.findFirstByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func int64Ptr(v int64) *int64 { return &v }

func ownedPrefs(ownerID string) *model.Preferences {
	return &model.Preferences{
		Entity: model.Entity{
			ID:        1,
			OwnerID:   ownerID,
			CreatedAt: time.Now().Add(-time.Hour),
		},
		Salary:          model.SalaryRange{Min: 5000000, Max: 8000000},
		JobType:         model.JobTypeFullTime,
		NeedsRelocation: true,
	}
}

// --- テスト ---

// TestService_Create は求職条件作成の正常系を検証する。
func TestService_Create(t *testing.T) {
	added := false
	repo := &mockPrefsRepo{
		addFn: func(ctx context.Context, prefs *model.Preferences) error {
			added = true
			prefs.ID = 9
			return nil
		},
	}
	svc := NewService(repo, nil)

	prefs, err := svc.Create(context.Background(), "owner-1", CreateParams{
		MinSalary:        5000000,
		MaxSalary:        8000000,
		JobType:          "FullTime",
		NeedsSponsorship: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !added {
		t.Error("expected Add to be called")
	}
	if prefs.ID != 9 {
		t.Errorf("ID = %d, want 9", prefs.ID)
	}
	if prefs.Salary.Min != 5000000 || prefs.Salary.Max != 8000000 {
		t.Errorf("Salary = %+v, want {5000000 8000000}", prefs.Salary)
	}
	if !prefs.NeedsSponsorship || prefs.NeedsRelocation {
		t.Errorf("flags = {%v %v}, want {true false}", prefs.NeedsSponsorship, prefs.NeedsRelocation)
	}
}

// TestService_Create_Validation は作成時のバリデーションを検証する。
func TestService_Create_Validation(t *testing.T) {
	cases := []struct {
		name    string
		ownerID string
		params  CreateParams
	}{
		{"オーナーが空", "", CreateParams{MinSalary: 0, MaxSalary: 100, JobType: "FullTime"}},
		{"下限が上限を超える", "owner-1", CreateParams{MinSalary: 200, MaxSalary: 100, JobType: "FullTime"}},
		{"下限が負数", "owner-1", CreateParams{MinSalary: -1, MaxSalary: 100, JobType: "FullTime"}},
		{"雇用形態が不正", "owner-1", CreateParams{MinSalary: 0, MaxSalary: 100, JobType: "Casual"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := &mockPrefsRepo{
				addFn: func(ctx context.Context, prefs *model.Preferences) error {
					t.Error("Add should not be called on validation failure")
					return nil
				},
			}
			svc := NewService(repo, nil)

			if _, err := svc.Create(context.Background(), c.ownerID, c.params); !model.IsValidation(err) {
				t.Errorf("Create = %v, want validation error", err)
			}
		})
	}
}

// TestService_Update_PartialFields は指定フィールドのみが更新されることを検証する。
func TestService_Update_PartialFields(t *testing.T) {
	existing := ownedPrefs("owner-1")

	var updated *model.Preferences
	repo := &mockPrefsRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Preferences, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, prefs *model.Preferences) error {
			updated = prefs
			return nil
		},
	}
	svc := NewService(repo, nil)

	prefs, err := svc.Update(context.Background(), "owner-1", 1, UpdateParams{
		MaxSalary: int64Ptr(9000000),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected Update to be called")
	}
	// 下限は既存値のまま上限だけが変わる
	if prefs.Salary.Min != 5000000 || prefs.Salary.Max != 9000000 {
		t.Errorf("Salary = %+v, want {5000000 9000000}", prefs.Salary)
	}
	if prefs.JobType != model.JobTypeFullTime || !prefs.NeedsRelocation {
		t.Errorf("unspecified fields changed: %+v", prefs)
	}
	if prefs.UpdatedAt == nil {
		t.Error("UpdatedAt should be set after update")
	}
}

// TestService_Update_RevalidatesMergedRange は既存値と上書き値を合成した
// 給与レンジが再検証されることを検証する。
func TestService_Update_RevalidatesMergedRange(t *testing.T) {
	repo := &mockPrefsRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Preferences, error) {
			return ownedPrefs("owner-1"), nil
		},
		updateFn: func(ctx context.Context, prefs *model.Preferences) error {
			t.Error("Update should not be called on validation failure")
			return nil
		},
	}
	svc := NewService(repo, nil)

	// 既存の下限5000000に対して上限を下回らせる
	if _, err := svc.Update(context.Background(), "owner-1", 1, UpdateParams{MaxSalary: int64Ptr(1000000)}); !model.IsValidation(err) {
		t.Errorf("Update(max below existing min) = %v, want validation error", err)
	}
	// 既存の上限8000000に対して下限を上回らせる
	if _, err := svc.Update(context.Background(), "owner-1", 1, UpdateParams{MinSalary: int64Ptr(9000000)}); !model.IsValidation(err) {
		t.Errorf("Update(min above existing max) = %v, want validation error", err)
	}
}

// TestService_Update_NotFound は存在しない求職条件と他オーナーの求職条件を検証する。
func TestService_Update_NotFound(t *testing.T) {
	repo := &mockPrefsRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Preferences, error) {
			if id == 1 {
				return ownedPrefs("owner-2"), nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, nil)

	if _, err := svc.Update(context.Background(), "owner-1", 99, UpdateParams{}); !model.IsNotFound(err) {
		t.Errorf("Update(missing) = %v, want not-found error", err)
	}
	if _, err := svc.Update(context.Background(), "owner-1", 1, UpdateParams{}); !model.IsNotFound(err) {
		t.Errorf("Update(other owner) = %v, want not-found error", err)
	}
}

// TestService_Delete は求職条件削除を検証する。
func TestService_Delete(t *testing.T) {
	removed := false
	repo := &mockPrefsRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Preferences, error) {
			if id == 1 {
				return ownedPrefs("owner-1"), nil
			}
			return nil, nil
		},
		removeFn: func(ctx context.Context, prefs *model.Preferences) error {
			removed = true
			return nil
		},
	}
	svc := NewService(repo, nil)

	if err := svc.Delete(context.Background(), "owner-1", 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !removed {
		t.Error("expected Remove to be called")
	}

	if err := svc.Delete(context.Background(), "owner-1", 99); !model.IsNotFound(err) {
		t.Errorf("Delete(missing) = %v, want not-found error", err)
	}
	if err := svc.Delete(context.Background(), "owner-1", 0); !model.IsValidation(err) {
		t.Errorf("Delete(id=0) = %v, want validation error", err)
	}
}

// TestService_GetByOwner はオーナー別の求職条件取得を検証する。
func TestService_GetByOwner(t *testing.T) {
	repo := &mockPrefsRepo{
		findFirstByOwnerFn: func(ctx context.Context, ownerID string) (*model.Preferences, error) {
			if ownerID == "owner-1" {
				return ownedPrefs(ownerID), nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, nil)

	prefs, err := svc.GetByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetByOwner returned error: %v", err)
	}
	if prefs.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q, want %q", prefs.OwnerID, "owner-1")
	}

	if _, err := svc.GetByOwner(context.Background(), "owner-2"); !model.IsNotFound(err) {
		t.Errorf("GetByOwner(unregistered) = %v, want not-found error", err)
	}
	if _, err := svc.GetByOwner(context.Background(), ""); !model.IsValidation(err) {
		t.Errorf("GetByOwner(empty owner) = %v, want validation error", err)
	}
}

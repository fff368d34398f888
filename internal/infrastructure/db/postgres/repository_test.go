package postgres

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// openTestDB returns an isolated in-memory database with the schema
// applied. Connections are capped at one so every query sees the same
// in-memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: "x", Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedBug(t *testing.T, db *gorm.DB, repo *BugRepository, creator uint, title, description string, status domain.BugStatus, priority domain.BugPriority, assignee *uint) *domain.Bug {
	t.Helper()
	bug := &domain.Bug{
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      status,
		CreatedBy:   creator,
		AssignedTo:  assignee,
	}
	if err := repo.Create(context.Background(), bug, domain.NewActivity("created", bug, creator)); err != nil {
		t.Fatalf("seed bug %q: %v", title, err)
	}
	return bug
}

func setUpdatedAt(t *testing.T, db *gorm.DB, bugID uint, ts time.Time) {
	t.Helper()
	if err := db.Model(&domain.Bug{}).Where("id = ?", bugID).Update("updated_at", ts).Error; err != nil {
		t.Fatalf("set updated_at: %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	if _, err := repo.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleTester}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "y", Role: domain.RoleAdmin}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user row, got %d", count)
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	created := seedUser(t, db, "dev1", domain.RoleDeveloper)
	seedUser(t, db, "tester1", domain.RoleTester)

	byID, err := repo.FindByID(context.Background(), created.ID)
	if err != nil || byID.Username != "dev1" {
		t.Fatalf("FindByID: %v %+v", err, byID)
	}
	if _, err := repo.FindByID(context.Background(), 999); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByUsername(context.Background(), "nobody"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	devs, err := repo.ListByRole(context.Background(), domain.RoleDeveloper)
	if err != nil || len(devs) != 1 || devs[0].Username != "dev1" {
		t.Fatalf("ListByRole: %v %+v", err, devs)
	}
}

func TestBugRepository_CreateWritesActivityAtomically(t *testing.T) {
	db := openTestDB(t)
	repo := NewBugRepository(db)
	user := seedUser(t, db, "tester1", domain.RoleTester)

	bug := seedBug(t, db, repo, user.ID, "Login page crash", "stack trace attached below", domain.StatusOpen, domain.PriorityMedium, nil)
	if bug.ID == 0 {
		t.Fatalf("expected bug id assigned")
	}

	var entries []domain.ActivityLog
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(entries))
	}
	if entries[0].BugID != bug.ID || entries[0].BugTitle != "Login page crash" {
		t.Fatalf("entry snapshot wrong: %+v", entries[0])
	}
}

func TestBugRepository_UpdateClearsAssignee(t *testing.T) {
	db := openTestDB(t)
	repo := NewBugRepository(db)
	tester := seedUser(t, db, "tester1", domain.RoleTester)
	dev := seedUser(t, db, "dev1", domain.RoleDeveloper)

	bug := seedBug(t, db, repo, tester.ID, "Assigned then cleared", "description long enough", domain.StatusOpen, domain.PriorityMedium, &dev.ID)

	bug.AssignedTo = nil
	if err := repo.Update(context.Background(), bug, domain.NewActivity("unassigned", bug, tester.ID)); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := repo.FindByID(context.Background(), bug.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.AssignedTo != nil {
		t.Fatalf("assignee not cleared to NULL: %+v", reloaded.AssignedTo)
	}
}

func TestBugRepository_DeleteKeepsActivity(t *testing.T) {
	db := openTestDB(t)
	repo := NewBugRepository(db)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)

	bug := seedBug(t, db, repo, admin.ID, "Doomed bug title", "it will be deleted shortly", domain.StatusOpen, domain.PriorityLow, nil)
	if err := repo.Delete(context.Background(), bug, domain.NewActivity("deleted", bug, admin.ID)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(context.Background(), bug.ID); err != domain.ErrBugNotFound {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}

	var entries []domain.ActivityLog
	db.Where("action = ?", "deleted").Find(&entries)
	if len(entries) != 1 || entries[0].BugTitle != "Doomed bug title" {
		t.Fatalf("delete entry missing or wrong: %+v", entries)
	}
}

func TestBugRepository_ListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewBugRepository(db)
	tester := seedUser(t, db, "tester1", domain.RoleTester)
	dev := seedUser(t, db, "dev1", domain.RoleDeveloper)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	login := seedBug(t, db, repo, tester.ID, "Login fails on Safari", "session cookie never set", domain.StatusOpen, domain.PriorityHigh, &dev.ID)
	setUpdatedAt(t, db, login.ID, base.Add(1*time.Hour))
	crash := seedBug(t, db, repo, tester.ID, "Crash when saving", "the LOGIN token is stale", domain.StatusOpen, domain.PriorityCritical, nil)
	setUpdatedAt(t, db, crash.ID, base.Add(2*time.Hour))
	closed := seedBug(t, db, repo, tester.ID, "Old login regression", "fixed ages ago and closed", domain.StatusClosed, domain.PriorityLow, &dev.ID)
	setUpdatedAt(t, db, closed.ID, base.Add(3*time.Hour))

	// status=open + case-insensitive search over title OR description,
	// ordered most-recently-updated first.
	bugs, err := repo.List(context.Background(), ports.ListBugsFilter{
		Status: domain.StatusOpen,
		Search: "login",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bugs) != 2 {
		t.Fatalf("expected 2 bugs, got %d", len(bugs))
	}
	if bugs[0].ID != crash.ID || bugs[1].ID != login.ID {
		t.Fatalf("wrong order: %d, %d", bugs[0].ID, bugs[1].ID)
	}

	// assigned filter
	bugs, err = repo.List(context.Background(), ports.ListBugsFilter{AssignedTo: &dev.ID})
	if err != nil || len(bugs) != 2 {
		t.Fatalf("assigned filter: %v, %d bugs", err, len(bugs))
	}

	// unassigned filter
	bugs, err = repo.List(context.Background(), ports.ListBugsFilter{Unassigned: true})
	if err != nil || len(bugs) != 1 || bugs[0].ID != crash.ID {
		t.Fatalf("unassigned filter: %v, %+v", err, bugs)
	}

	// priority filter
	bugs, err = repo.List(context.Background(), ports.ListBugsFilter{Priority: domain.PriorityCritical})
	if err != nil || len(bugs) != 1 || bugs[0].ID != crash.ID {
		t.Fatalf("priority filter: %v, %+v", err, bugs)
	}

	// no filters returns everything
	bugs, err = repo.List(context.Background(), ports.ListBugsFilter{})
	if err != nil || len(bugs) != 3 {
		t.Fatalf("unfiltered list: %v, %d bugs", err, len(bugs))
	}
}

func TestDashboardRepository_Stats(t *testing.T) {
	db := openTestDB(t)
	bugRepo := NewBugRepository(db)
	repo := NewDashboardRepository(db)
	tester := seedUser(t, db, "tester1", domain.RoleTester)

	seedBug(t, db, bugRepo, tester.ID, "Open critical bug", "description long enough", domain.StatusOpen, domain.PriorityCritical, nil)
	seedBug(t, db, bugRepo, tester.ID, "Open medium bug !", "description long enough", domain.StatusOpen, domain.PriorityMedium, nil)
	seedBug(t, db, bugRepo, tester.ID, "In progress high.", "description long enough", domain.StatusInProgress, domain.PriorityHigh, nil)
	seedBug(t, db, bugRepo, tester.ID, "Closed low prio..", "description long enough", domain.StatusClosed, domain.PriorityLow, nil)

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := ports.BugStats{Total: 4, Open: 2, InProgress: 1, Closed: 1, Critical: 1, High: 1, Medium: 1, Low: 1}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}
}

func TestDashboardRepository_Workload(t *testing.T) {
	db := openTestDB(t)
	bugRepo := NewBugRepository(db)
	repo := NewDashboardRepository(db)
	tester := seedUser(t, db, "tester1", domain.RoleTester)
	dev1 := seedUser(t, db, "dev1", domain.RoleDeveloper)
	dev2 := seedUser(t, db, "dev2", domain.RoleDeveloper)

	seedBug(t, db, bugRepo, tester.ID, "dev1 open bug...", "description long enough", domain.StatusOpen, domain.PriorityMedium, &dev1.ID)
	seedBug(t, db, bugRepo, tester.ID, "dev1 in progress", "description long enough", domain.StatusInProgress, domain.PriorityMedium, &dev1.ID)
	seedBug(t, db, bugRepo, tester.ID, "dev1 closed bug.", "description long enough", domain.StatusClosed, domain.PriorityMedium, &dev1.ID)
	seedBug(t, db, bugRepo, tester.ID, "unassigned bug..", "description long enough", domain.StatusOpen, domain.PriorityMedium, nil)

	workload, err := repo.Workload(context.Background())
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if len(workload) != 2 {
		t.Fatalf("expected entries for every developer, got %d", len(workload))
	}

	byID := map[uint]ports.DeveloperWorkload{}
	for _, w := range workload {
		byID[w.DeveloperID] = w
	}
	d1 := byID[dev1.ID]
	if d1.AssignedBugs != 3 || d1.OpenBugs != 1 || d1.InProgressBugs != 1 {
		t.Fatalf("dev1 workload wrong: %+v", d1)
	}
	d2 := byID[dev2.ID]
	if d2.AssignedBugs != 0 {
		t.Fatalf("dev2 should have empty workload: %+v", d2)
	}
}

func TestDashboardRepository_RecentActivity(t *testing.T) {
	db := openTestDB(t)
	bugRepo := NewBugRepository(db)
	repo := NewDashboardRepository(db)
	tester := seedUser(t, db, "tester1", domain.RoleTester)

	bug := seedBug(t, db, bugRepo, tester.ID, "Busy bug, lots of churn", "description long enough", domain.StatusOpen, domain.PriorityMedium, nil)
	for i := 0; i < 12; i++ {
		entry := domain.NewActivity("updated", bug, tester.ID)
		entry.Timestamp = time.Date(2026, 8, 1, 0, 0, i, 0, time.UTC)
		if err := bugRepo.Update(context.Background(), bug, entry); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	logs, err := repo.RecentActivity(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent activity: %v", err)
	}
	if len(logs) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].Timestamp.After(logs[i-1].Timestamp) {
			t.Fatalf("entries not in descending timestamp order")
		}
	}
	if logs[0].User == nil || logs[0].User.Username != "tester1" {
		t.Fatalf("actor not preloaded: %+v", logs[0].User)
	}
}

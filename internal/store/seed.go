package store

import (
	"database/sql"
	"fmt"
	"time"

	"hearthside/internal/model"
)

// DemoFamilyCode is the code of the seeded demo family.
const DemoFamilyCode = "DEMO2025"

// SeedDemo provisions the demo family with four members and sample content.
// It is a no-op when the demo family already exists.
func SeedDemo(db *sql.DB) error {
	families := NewFamilyStore(db)

	exists, err := families.Exists(DemoFamilyCode)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := families.CreateWithCode(DemoFamilyCode, "Smith Family"); err != nil {
		return fmt.Errorf("seed family: %w", err)
	}

	members := NewMemberStore(db)
	seedMembers := []RegisterParams{
		{Username: "dad", Name: "Dad", Password: "demo123", Role: model.RoleFather,
			Avatar: "👨", Status: "At work", Birthday: "1980-05-15", Bio: "Head of the family", Email: "dad@smith.com"},
		{Username: "mom", Name: "Mom", Password: "demo123", Role: model.RoleMother,
			Avatar: "👩", Status: "At home", Birthday: "1982-08-22", Bio: "Family organizer", Email: "mom@smith.com"},
		{Username: "sarah", Name: "Sarah", Password: "demo123", Role: model.RoleDaughter,
			Avatar: "👧", Status: "School", Birthday: "2010-03-10", Bio: "Soccer star ⚽", Email: "sarah@smith.com"},
		{Username: "tommy", Name: "Tommy", Password: "demo123", Role: model.RoleSon,
			Avatar: "👦", Status: "At home", Birthday: "2012-11-05", Bio: "Gamer 🎮", Email: "tommy@smith.com"},
	}
	for _, p := range seedMembers {
		p.FamilyCode = DemoFamilyCode
		if _, err := members.Register(p); err != nil {
			return fmt.Errorf("seed member %q: %w", p.Username, err)
		}
	}

	announcements := NewAnnouncementStore(db)
	a, err := announcements.Create(DemoFamilyCode, "Dad", model.RoleFather,
		"🏠 Family meeting tonight at 7 PM to discuss weekend plans!", model.PriorityHigh)
	if err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}
	for _, r := range []struct{ emoji, user string }{
		{"❤️", "mom"}, {"❤️", "sarah"}, {"👍", "tommy"},
	} {
		if err := announcements.React(DemoFamilyCode, a.ID, r.emoji, r.user); err != nil {
			return fmt.Errorf("seed reaction: %w", err)
		}
	}

	messages := NewMessageStore(db)
	seedMessages := []struct{ author, role, content string }{
		{"Mom", model.RoleMother, "What does everyone want for dinner? 🍽️"},
		{"Sarah", model.RoleDaughter, "Can we have pizza? 🍕"},
	}
	for _, m := range seedMessages {
		if _, err := messages.Create(DemoFamilyCode, m.author, m.role, m.content); err != nil {
			return fmt.Errorf("seed message: %w", err)
		}
	}

	events := NewEventStore(db)
	now := time.Now()
	seedEvents := []struct {
		title, date, time, location, creator string
	}{
		{"Sarah's Soccer Game", now.AddDate(0, 0, 2).Format("2006-01-02"), "15:00", "City Stadium", "Mom"},
		{"Family Movie Night", now.AddDate(0, 0, 5).Format("2006-01-02"), "19:00", "Home", "Dad"},
	}
	for _, e := range seedEvents {
		if _, err := events.Create(DemoFamilyCode, e.title, e.date, e.time, e.location, e.creator); err != nil {
			return fmt.Errorf("seed event: %w", err)
		}
	}

	tasks := NewTaskStore(db)
	if _, err := tasks.Create(DemoFamilyCode, "Take out trash", "Tommy", now.AddDate(0, 0, 1).Format("2006-01-02"), "Mom"); err != nil {
		return fmt.Errorf("seed task: %w", err)
	}
	done, err := tasks.Create(DemoFamilyCode, "Buy groceries", "Mom", now.Format("2006-01-02"), "Dad")
	if err != nil {
		return fmt.Errorf("seed task: %w", err)
	}
	if _, err := tasks.Complete(DemoFamilyCode, done.ID); err != nil {
		return fmt.Errorf("seed task completion: %w", err)
	}

	return nil
}

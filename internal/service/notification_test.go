package service

import (
	"context"
	"errors"
	"testing"

	"github.com/1craig1/game-release-tracker/pkg/models"
)

func TestNotifyUsersOfGameReleasesFansOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	game := createTestGame(t, db, "Hollow Dusk", "hollow-dusk", models.GameStatusReleased)
	otherGame := createTestGame(t, db, "Star Drift", "star-drift", models.GameStatusReleased)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	muted := createTestUser(t, db, "carol")
	if err := db.Model(muted).Update("enable_notifications", false).Error; err != nil {
		t.Fatalf("disable notifications: %v", err)
	}

	items := []models.WishlistItem{
		{UserID: alice.ID, GameID: game.ID},
		{UserID: bob.ID, GameID: game.ID},
		{UserID: bob.ID, GameID: otherGame.ID},
		{UserID: muted.ID, GameID: game.ID},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create wishlist item: %v", err)
		}
	}

	if err := svc.NotifyUsersOfGameReleases(context.Background(), []uint{game.ID, otherGame.ID}); err != nil {
		t.Fatalf("NotifyUsersOfGameReleases: %v", err)
	}

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	// alice x1, bob x2, carol muted.
	if len(notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifications))
	}
	for _, n := range notifications {
		if n.UserID == muted.ID {
			t.Error("muted user must not be notified")
		}
		if n.IsRead {
			t.Error("fan-out notifications must start unread")
		}
	}
}

func TestNotifyUsersOfGameReleasesEmptyInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	if err := svc.NotifyUsersOfGameReleases(context.Background(), nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 notifications, got %d", count)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Hollow Dusk", "hollow-dusk", models.GameStatusReleased)

	if err := svc.NotifyWishlistAddition(context.Background(), user, game); err != nil {
		t.Fatalf("NotifyWishlistAddition: %v", err)
	}

	unread, err := svc.GetUnreadNotifications(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUnreadNotifications: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread, got %d", len(unread))
	}
	if unread[0].GameTitle != "Hollow Dusk" {
		t.Errorf("game not flattened into dto: %+v", unread[0])
	}

	id := unread[0].ID
	if err := svc.MarkAsRead(context.Background(), id, user.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	count, err := svc.GetUnreadNotificationCount(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUnreadNotificationCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread after read, got %d", count)
	}

	if err := svc.MarkAsNotRead(context.Background(), id, user.ID); err != nil {
		t.Fatalf("MarkAsNotRead: %v", err)
	}
	count, _ = svc.GetUnreadNotificationCount(context.Background(), user.ID)
	if count != 1 {
		t.Errorf("expected 1 unread after unread flip, got %d", count)
	}

	if err := svc.MarkAllAsRead(context.Background(), user.ID); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}
	count, _ = svc.GetUnreadNotificationCount(context.Background(), user.ID)
	if count != 0 {
		t.Errorf("expected 0 unread after mark-all, got %d", count)
	}

	if err := svc.DeleteNotification(context.Background(), id, user.ID); err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}
	all, err := svc.GetUserNotifications(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserNotifications: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(all))
	}
}

func TestNotificationOwnershipHidesForeignRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	owner := createTestUser(t, db, "alice")
	intruder := createTestUser(t, db, "bob")
	game := createTestGame(t, db, "Hollow Dusk", "hollow-dusk", models.GameStatusReleased)

	if err := svc.NotifyWishlistAddition(context.Background(), owner, game); err != nil {
		t.Fatalf("NotifyWishlistAddition: %v", err)
	}
	notifications, err := svc.GetUserNotifications(context.Background(), owner.ID)
	if err != nil || len(notifications) != 1 {
		t.Fatalf("setup: %v (%d notifications)", err, len(notifications))
	}
	id := notifications[0].ID

	// Another user's access reads as not-found, never as forbidden.
	if err := svc.MarkAsRead(context.Background(), id, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkAsRead: expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteNotification(context.Background(), id, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteNotification: expected ErrNotFound, got %v", err)
	}

	// Untouched for the owner.
	remaining, err := svc.GetUserNotifications(context.Background(), owner.ID)
	if err != nil || len(remaining) != 1 {
		t.Errorf("owner's notification should survive: %v (%d left)", err, len(remaining))
	}
}

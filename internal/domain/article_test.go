package domain

import (
	"testing"
	"time"
)

func TestTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to ArticleStatus }{
		{StatusDraft, StatusReview},
		{StatusReview, StatusDraft},
		{StatusReview, StatusScheduled},
		{StatusReview, StatusPublished},
		{StatusScheduled, StatusPublished},
		{StatusScheduled, StatusDraft},
		{StatusPublished, StatusArchived},
		{StatusArchived, StatusPublished},
		{StatusDraft, StatusPublished},
	}

	isAllowed := make(map[[2]ArticleStatus]bool)
	for _, tr := range allowed {
		isAllowed[[2]ArticleStatus{tr.from, tr.to}] = true
		if !TransitionAllowed(tr.from, tr.to) {
			t.Errorf("TransitionAllowed(%s, %s) = false, want true", tr.from, tr.to)
		}
	}

	// Every pair not in the table must be rejected.
	all := []ArticleStatus{StatusDraft, StatusReview, StatusScheduled, StatusPublished, StatusArchived}
	for _, from := range all {
		for _, to := range all {
			if isAllowed[[2]ArticleStatus{from, to}] {
				continue
			}
			if TransitionAllowed(from, to) {
				t.Errorf("TransitionAllowed(%s, %s) = true, want false", from, to)
			}
		}
	}
}

func TestTransitionPermitted(t *testing.T) {
	tests := []struct {
		name string
		from ArticleStatus
		to   ArticleStatus
		role Role
		want bool
	}{
		{"author submits draft", StatusDraft, StatusReview, RoleAuthor, true},
		{"author publishes draft", StatusDraft, StatusPublished, RoleAuthor, false},
		{"author publishes review", StatusReview, StatusPublished, RoleAuthor, false},
		{"editor publishes review", StatusReview, StatusPublished, RoleEditor, true},
		{"editor direct publish", StatusDraft, StatusPublished, RoleEditor, true},
		{"admin archives", StatusPublished, StatusArchived, RoleAdmin, true},
		{"author archives", StatusPublished, StatusArchived, RoleAuthor, false},
		{"editor restores", StatusArchived, StatusPublished, RoleEditor, true},
		{"editor cancels schedule", StatusScheduled, StatusDraft, RoleEditor, true},
		{"nonexistent edge", StatusArchived, StatusDraft, RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransitionPermitted(tt.from, tt.to, tt.role); got != tt.want {
				t.Errorf("TransitionPermitted(%s, %s, %s) = %v, want %v", tt.from, tt.to, tt.role, got, tt.want)
			}
		})
	}
}

func TestArticleEditableBy(t *testing.T) {
	owner := &User{Timestamps: Timestamps{ID: "user-1"}, Role: RoleAuthor}
	other := &User{Timestamps: Timestamps{ID: "user-2"}, Role: RoleAuthor}
	editor := &User{Timestamps: Timestamps{ID: "user-3"}, Role: RoleEditor}

	a := &Article{Timestamps: Timestamps{ID: "art-1"}, AuthorID: "user-1", Status: StatusDraft}

	if !a.EditableBy(owner) {
		t.Error("author should edit own draft")
	}
	if a.EditableBy(other) {
		t.Error("author should not edit someone else's draft")
	}
	if !a.EditableBy(editor) {
		t.Error("editor should edit any article")
	}

	a.Status = StatusPublished
	if a.EditableBy(owner) {
		t.Error("author should not edit own published article")
	}
}

func TestArticleIsDue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	a := &Article{Status: StatusScheduled, PublishedAt: &past}
	if !a.IsDue(now) {
		t.Error("scheduled article with elapsed instant should be due")
	}

	a.PublishedAt = &future
	if a.IsDue(now) {
		t.Error("scheduled article with future instant should not be due")
	}

	a.Status = StatusDraft
	a.PublishedAt = nil
	if a.IsDue(now) {
		t.Error("draft is never due")
	}
}

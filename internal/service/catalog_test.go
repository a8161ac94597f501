package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
)

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.catalog.CreateCategory(ctx, CreateCategoryRequest{
		Name:  "Gradska Uprava",
		Color: "#dc2626",
	}, env.editor)
	require.NoError(t, err)
	assert.Equal(t, "gradska-uprava", c.Slug)
	assert.Equal(t, 1, c.DisplayOrder, "new categories append after the seeded one")

	// Slug collision on the derived slug is an error, not a suffix.
	_, err = env.catalog.CreateCategory(ctx, CreateCategoryRequest{Name: "Gradska Uprava"}, env.editor)
	assertErrCode(t, err, domainerrors.CodeDuplicateSlug)

	// Authors may not manage categories.
	_, err = env.catalog.CreateCategory(ctx, CreateCategoryRequest{Name: "Sport"}, env.author)
	assertErrCode(t, err, domainerrors.CodeForbidden)
}

func TestUpdateCategory_SlugStable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	updated, err := env.catalog.UpdateCategory(ctx, env.category.ID, UpdateCategoryRequest{
		Name: "Dnevne Vijesti",
	}, env.editor)
	require.NoError(t, err)
	assert.Equal(t, "Dnevne Vijesti", updated.Name)
	assert.Equal(t, "vijesti", updated.Slug, "renaming never moves the slug")
}

func TestCategoryNameUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.CreateCategory(ctx, CreateCategoryRequest{Name: "Sport"}, env.editor)
	require.NoError(t, err)

	// A distinct slug doesn't rescue a duplicated display name.
	_, err = env.catalog.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Sport",
		Slug: "sportske-vijesti",
	}, env.editor)
	assertErrCode(t, err, domainerrors.CodeConflict)

	// Renaming onto a name another category holds collides the same way.
	_, err = env.catalog.UpdateCategory(ctx, env.category.ID, UpdateCategoryRequest{Name: "Sport"}, env.editor)
	assertErrCode(t, err, domainerrors.CodeConflict)

	// The rename failing must not have touched the stored row.
	got, err := env.catalog.GetCategory(ctx, env.category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vijesti", got.Name)
}

func TestDeleteCategory_InUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.articles.Create(ctx, env.createRequest(), env.author)
	require.NoError(t, err)

	err = env.catalog.DeleteCategory(ctx, env.category.ID, env.editor)
	assertErrCode(t, err, domainerrors.CodeCategoryInUse)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	// Empty categories delete fine.
	empty, err := env.catalog.CreateCategory(ctx, CreateCategoryRequest{Name: "Prazna"}, env.editor)
	require.NoError(t, err)
	require.NoError(t, env.catalog.DeleteCategory(ctx, empty.ID, env.editor))

	_, err = env.catalog.GetCategory(ctx, empty.ID)
	assertErrCode(t, err, domainerrors.CodeNotFound)
}

func TestReorderCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sport, err := env.catalog.CreateCategory(ctx, CreateCategoryRequest{Name: "Sport"}, env.editor)
	require.NoError(t, err)

	// Incomplete lists are rejected.
	err = env.catalog.ReorderCategories(ctx, []string{sport.ID}, env.editor)
	assertErrCode(t, err, domainerrors.CodeValidation)

	// Duplicates are rejected.
	err = env.catalog.ReorderCategories(ctx, []string{sport.ID, sport.ID}, env.editor)
	assertErrCode(t, err, domainerrors.CodeValidation)

	require.NoError(t, env.catalog.ReorderCategories(ctx, []string{sport.ID, env.category.ID}, env.editor))

	list, err := env.catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sport.ID, list[0].ID)
	assert.Equal(t, env.category.ID, list[1].ID)
}

func TestCreateTag_IdempotentBySlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.catalog.CreateTag(ctx, CreateTagRequest{Name: "Riječka Luka"}, env.author)
	require.NoError(t, err)
	assert.Equal(t, "rijecka-luka", first.Slug)

	// A second create with a name that slugs identically returns the
	// existing tag; the original display name wins.
	second, err := env.catalog.CreateTag(ctx, CreateTagRequest{Name: "riječka luka"}, env.editor)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Riječka Luka", second.Name)

	tags, err := env.catalog.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2, "seeded tag plus one created tag")
}

func TestDeleteTag_DetachesFromArticles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.articles.Create(ctx, env.createRequest(), env.author)
	require.NoError(t, err)
	require.Len(t, a.TagIDs, 1)

	// Authors may not delete tags.
	assertErrCode(t, env.catalog.DeleteTag(ctx, env.tag.ID, env.author), domainerrors.CodeForbidden)

	require.NoError(t, env.catalog.DeleteTag(ctx, env.tag.ID, env.editor))

	got, err := env.articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TagIDs, "deleting a tag detaches it everywhere")

	assertErrCode(t, env.catalog.DeleteTag(ctx, env.tag.ID, env.editor), domainerrors.CodeNotFound)
}

func TestCatalog_RoleChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := domain.Actor{UserID: "user-author", Role: domain.RoleAuthor}

	_, err := env.catalog.UpdateCategory(ctx, env.category.ID, UpdateCategoryRequest{Name: "Novo Ime"}, author)
	assertErrCode(t, err, domainerrors.CodeForbidden)

	assertErrCode(t, env.catalog.DeleteCategory(ctx, env.category.ID, author), domainerrors.CodeForbidden)
	assertErrCode(t, env.catalog.ReorderCategories(ctx, []string{env.category.ID}, author), domainerrors.CodeForbidden)
}

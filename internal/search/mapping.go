package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for article documents.
//
// Croatian has no dedicated Bleve analyzer, so text fields use the standard
// analyzer: unicode tokenization and lowercasing without stemming. Slug and
// id fields use the keyword analyzer for exact matching.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name

	docMapping := bleve.NewDocumentMapping()

	// Title is the primary search target and gets term vectors for
	// highlighting.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = standard.Name
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	subtitleFieldMapping := bleve.NewTextFieldMapping()
	subtitleFieldMapping.Analyzer = standard.Name
	subtitleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("subtitle", subtitleFieldMapping)

	excerptFieldMapping := bleve.NewTextFieldMapping()
	excerptFieldMapping.Analyzer = standard.Name
	excerptFieldMapping.Store = true
	excerptFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("excerpt", excerptFieldMapping)

	// Body is searchable but not stored: full article text would bloat
	// the index and the store already has it.
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Analyzer = standard.Name
	bodyFieldMapping.Store = false
	bodyFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("body", bodyFieldMapping)

	categoryNameFieldMapping := bleve.NewTextFieldMapping()
	categoryNameFieldMapping.Analyzer = standard.Name
	categoryNameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category_name", categoryNameFieldMapping)

	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = standard.Name
	authorFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("author_name", authorFieldMapping)

	// Exact-match fields.
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	slugFieldMapping := bleve.NewTextFieldMapping()
	slugFieldMapping.Analyzer = keyword.Name
	slugFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("slug", slugFieldMapping)

	categorySlugFieldMapping := bleve.NewTextFieldMapping()
	categorySlugFieldMapping.Analyzer = keyword.Name
	categorySlugFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category_slug", categorySlugFieldMapping)

	// Keyword analyzer keeps compound tag slugs intact ("gradska-uprava").
	tagSlugsFieldMapping := bleve.NewTextFieldMapping()
	tagSlugsFieldMapping.Analyzer = keyword.Name
	tagSlugsFieldMapping.Store = true
	tagSlugsFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("tag_slugs", tagSlugsFieldMapping)

	// Numeric fields for sorting.
	publishedAtFieldMapping := bleve.NewNumericFieldMapping()
	publishedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("published_at", publishedAtFieldMapping)

	viewCountFieldMapping := bleve.NewNumericFieldMapping()
	viewCountFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("view_count", viewCountFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

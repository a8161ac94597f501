// Package main provides a tool to seed the database with demo newsroom data.
//
// It creates three accounts (admin, editor, author), the portal's category
// set, a handful of tags and sample articles in various lifecycle states,
// then publishes most of them so the public endpoints have content.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/rijeka-online/data
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/f246632/rijeka-online/internal/auth"
	"github.com/f246632/rijeka-online/internal/config"
	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/logger"
	"github.com/f246632/rijeka-online/internal/search"
	"github.com/f246632/rijeka-online/internal/service"
	"github.com/f246632/rijeka-online/internal/store/sqlite"
	"github.com/f246632/rijeka-online/internal/validation"
)

type seedAccount struct {
	name     string
	email    string
	password string
	role     domain.Role
	bio      string
}

var accounts = []seedAccount{
	{"Admin", "admin@rijeka.online", "admin123", domain.RoleAdmin,
		"Glavni administrator Rijeka Online portala"},
	{"Marko Horvat", "marko@rijeka.online", "editor123", domain.RoleEditor,
		"Glavni urednik, odgovoran za politiku i ekonomiju"},
	{"Ana Kovač", "ana@rijeka.online", "author123", domain.RoleAuthor,
		"Novinarka specijalizirana za kulturu i umjetnost"},
}

type seedCategory struct {
	name        string
	description string
	color       string
	icon        string
}

var categories = []seedCategory{
	{"Politika", "Vijesti iz Hrvatske i svijeta", "#2563eb", "Landmark"},
	{"Ekonomija", "Poslovne vijesti i financije", "#16a34a", "TrendingUp"},
	{"Kultura", "Umjetnost, glazba, film i knjige", "#9333ea", "Palette"},
	{"Sport", "Sportske vijesti i rezultati", "#dc2626", "Trophy"},
	{"Mišljenja", "Kolumne i komentari", "#ea580c", "MessageSquare"},
}

var tags = []string{"Vlada", "EU", "Rijeka", "Kulturni turizam", "Tehnologija"}

type seedArticle struct {
	title           string
	subtitle        string
	excerpt         string
	content         string
	metaTitle       string
	metaDescription string
	keywords        []string
	category        string // category slug
	tags            []string
	author          domain.Role
	publish         bool
}

var articles = []seedArticle{
	{
		title:           "Novi zakon o obnovi donosi važne promjene za vlasnike nekretnina",
		subtitle:        "Vlada predstavila paket mjera za ubrzanje obnove",
		excerpt:         "Vlada je danas predstavila dugoočekivani zakon o obnovi koji donosi niz promjena u procesu obnove zgrada oštećenih u potresu.",
		content:         "<p>Vlada Republike Hrvatske predstavila je danas novi Zakon o obnovi zgrada oštećenih potresom koji donosi niz važnih promjena za vlasnike nekretnina.</p><h2>Ključne novosti</h2><p>Novi zakon pojednostavljuje postupke te ubrzava proces izdavanja dozvola za obnovu. Vlasnici zgrada moći će aplicirati za sredstva kroz pojednostavljeni online sustav.</p>",
		metaTitle:       "Novi zakon o obnovi - Što znači za vlasnike nekretnina",
		metaDescription: "Vlada predstavila novi zakon o obnovi s važnim promjenama za vlasnike. Saznajte sve detalje.",
		keywords:        []string{"obnova", "potres", "zakon", "vlada", "nekretnine"},
		category:        "politika",
		tags:            []string{"Vlada", "Rijeka"},
		author:          domain.RoleEditor,
		publish:         true,
	},
	{
		title:           "Rijeka postaje regionalni tehnološki hub",
		subtitle:        "Novi startup centar otvara vrata inovatorima",
		excerpt:         "U Rijeci je službeno otvoren najveći startup centar u regiji koji će biti dom za preko 50 tehnoloških tvrtki.",
		content:         "<p>Grad Rijeka nastavlja svoj put digitalne transformacije otvaranjem najvećeg startup centra u regiji.</p>",
		metaTitle:       "Rijeka tehnološki hub - Novi startup centar",
		metaDescription: "Rijeka otvara najveći startup centar u regiji. Saznajte više o ovoj važnoj investiciji.",
		keywords:        []string{"rijeka", "startup", "tehnologija", "hub", "inovacije"},
		category:        "ekonomija",
		tags:            []string{"Rijeka", "Tehnologija"},
		author:          domain.RoleEditor,
		publish:         true,
	},
	{
		title:           "Festival filma vraća se u Rijeku nakon tri godine",
		subtitle:        "Očekuje se preko 10.000 posjetitelja",
		excerpt:         "Međunarodni festival filma vraća se u Rijeku s bogatim programom domaćih i stranih produkcija.",
		content:         "<p>Nakon trogodišnje pauze, Međunarodni festival filma vraća se u Rijeku s još bogatijim programom.</p>",
		metaTitle:       "Festival filma Rijeka 2026",
		metaDescription: "Međunarodni festival filma vraća se u Rijeku. Program, datumi i sve informacije.",
		keywords:        []string{"film", "festival", "rijeka", "kultura", "umjetnost"},
		category:        "kultura",
		tags:            []string{"Rijeka", "Kulturni turizam"},
		author:          domain.RoleAuthor,
		publish:         true,
	},
	{
		title:           "Hrvatska se pridružuje europskom energetskom projektu",
		subtitle:        "Investicija od 500 milijuna eura",
		excerpt:         "Hrvatska će sudjelovati u velikom EU projektu razvoja obnovljivih izvora energije.",
		content:         "<p>Europska unija odobrila je financiranje za veliki energetski projekt u kojem će Hrvatska imati značajnu ulogu.</p>",
		metaTitle:       "Hrvatska u EU energetskom projektu",
		metaDescription: "Hrvatska dobiva 500 milijuna eura za razvoj obnovljivih izvora energije iz EU fondova.",
		keywords:        []string{"eu", "energija", "obnovljivi-izvori", "hrvatska", "projekt"},
		category:        "ekonomija",
		tags:            []string{"EU", "Vlada"},
		author:          domain.RoleEditor,
		publish:         true,
	},
	{
		title:    "Novi sportski centar uskoro otvara vrata",
		subtitle: "Građani će imati pristup modernim sadržajima",
		excerpt:  "Gradnja novog sportskog centra ulazi u završnu fazu.",
		content:  "<p>Članak u pripremi...</p>",
		category: "sport",
		tags:     []string{"Rijeka"},
		author:   domain.RoleAuthor,
		publish:  false,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := sqlite.Open(cfg.Database.Path, logg.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	if err := os.MkdirAll(cfg.Search.IndexPath, 0o755); err != nil {
		log.Fatalf("Failed to create search directory: %v", err)
	}
	index, err := search.NewIndex(search.Options{DataPath: cfg.Search.IndexPath, Logger: logg.Logger})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	ctx := context.Background()

	existing, err := st.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Database already has %d users, nothing to do\n", len(existing))
		return
	}

	// Accounts go in through the store directly; no admin exists yet to
	// authorize the service path.
	actors := map[domain.Role]domain.Actor{}
	for _, acc := range accounts {
		hash, err := auth.HashPassword(acc.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		userID, err := id.Generate("user")
		if err != nil {
			log.Fatalf("Failed to generate user id: %v", err)
		}
		u := &domain.User{
			Timestamps:   domain.Timestamps{ID: userID},
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
			Bio:          acc.bio,
		}
		u.InitTimestamps()
		if err := st.CreateUser(ctx, u); err != nil {
			log.Fatalf("Failed to create user %s: %v", acc.email, err)
		}
		actors[acc.role] = domain.Actor{UserID: u.ID, Role: u.Role}
		fmt.Printf("Created %s account: %s\n", acc.role, acc.email)
	}

	validator := validation.New()
	searchSvc := service.NewSearchService(st, index, logg.Logger)
	catalogSvc := service.NewCatalogService(st, validator, logg.Logger)
	articleSvc := service.NewArticleService(st, validator, searchSvc, logg.Logger)

	admin := actors[domain.RoleAdmin]
	editor := actors[domain.RoleEditor]

	categoryIDs := map[string]string{} // slug -> id
	for _, c := range categories {
		cat, err := catalogSvc.CreateCategory(ctx, service.CreateCategoryRequest{
			Name:        c.name,
			Description: c.description,
			Color:       c.color,
			Icon:        c.icon,
		}, admin)
		if err != nil {
			log.Fatalf("Failed to create category %s: %v", c.name, err)
		}
		categoryIDs[cat.Slug] = cat.ID
		fmt.Printf("Created category: %s (%s)\n", cat.Name, cat.Slug)
	}

	tagIDs := map[string]string{} // name -> id
	for _, name := range tags {
		t, err := catalogSvc.CreateTag(ctx, service.CreateTagRequest{Name: name}, editor)
		if err != nil {
			log.Fatalf("Failed to create tag %s: %v", name, err)
		}
		tagIDs[name] = t.ID
		fmt.Printf("Created tag: %s (%s)\n", t.Name, t.Slug)
	}

	published := 0
	for _, art := range articles {
		ids := make([]string, len(art.tags))
		for i, name := range art.tags {
			ids[i] = tagIDs[name]
		}
		created, err := articleSvc.Create(ctx, service.CreateArticleRequest{
			Title:           art.title,
			Subtitle:        art.subtitle,
			Excerpt:         art.excerpt,
			Content:         art.content,
			CategoryID:      categoryIDs[art.category],
			TagIDs:          ids,
			MetaTitle:       art.metaTitle,
			MetaDescription: art.metaDescription,
			MetaKeywords:    art.keywords,
		}, actors[art.author])
		if err != nil {
			log.Fatalf("Failed to create article %q: %v", art.title, err)
		}
		fmt.Printf("Created article: %s (%s)\n", created.Title, created.Slug)

		if art.publish {
			if _, err := articleSvc.Transition(ctx, created.ID, domain.StatusPublished, nil, editor); err != nil {
				log.Fatalf("Failed to publish article %q: %v", art.title, err)
			}
			published++
		}
	}

	// One scheduled article so the sweeper has something to promote.
	scheduled, err := articleSvc.Create(ctx, service.CreateArticleRequest{
		Title:      "Najava: nova biciklistička staza uz Rječinu",
		Content:    "<p>Grad će sutra predstaviti projekt biciklističke staze od Školjića do ušća Rječine.</p>",
		CategoryID: categoryIDs["politika"],
		TagIDs:     []string{tagIDs["Rijeka"]},
	}, actors[domain.RoleAuthor])
	if err != nil {
		log.Fatalf("Failed to create scheduled article: %v", err)
	}
	if _, err := articleSvc.Transition(ctx, scheduled.ID, domain.StatusReview, nil, actors[domain.RoleAuthor]); err != nil {
		log.Fatalf("Failed to submit scheduled article for review: %v", err)
	}
	when := time.Now().Add(24 * time.Hour)
	if _, err := articleSvc.Transition(ctx, scheduled.ID, domain.StatusScheduled, &when, editor); err != nil {
		log.Fatalf("Failed to schedule article: %v", err)
	}
	fmt.Printf("Scheduled article %q for %s\n", scheduled.Title, when.Format(time.RFC3339))

	fmt.Printf("\nSeeded %d users, %d categories, %d tags, %d articles (%d published)\n",
		len(accounts), len(categories), len(tags), len(articles)+1, published)
	fmt.Println("\nTest credentials:")
	for _, acc := range accounts {
		fmt.Printf("  %s: %s / %s\n", acc.role, acc.email, acc.password)
	}
}

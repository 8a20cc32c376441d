package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/config"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/service"
	"github.com/tendant/simple-cms/internal/store"
)

const usage = `Simple CMS Admin CLI

Operates directly on the configured store, without going through the HTTP API.

USAGE:
  admin <command> [options]

COMMANDS:
  create-admin      Register an Admin user
  create-category   Create a category
  categories        List categories
  list              List contents with optional filtering and sorting
  stats             Count contents per type

ENVIRONMENT VARIABLES:
  DATABASE_TYPE     memory, mongo or postgres (default: memory)
  MONGO_URI         MongoDB connection string
  MONGO_DATABASE    MongoDB database name
  CMS_PG_HOST, CMS_PG_PORT, CMS_PG_NAME, CMS_PG_USER, CMS_PG_PASSWORD

  Configuration can be loaded from a .env file in the current directory.

EXAMPLES:
  admin create-admin --username=root --email=root@example.com --password=secret
  admin create-category --name=News --images --texts
  admin list --category-id=<id> --sort=-createdAt --limit=20
  admin stats --creator-id=<id> --json

OPTIONS (for list/stats):
  --category-id=<id>     Filter by category
  --creator-id=<id>      Filter by creator
  --type=<type>          Filter by type (Image, Video, Text)
  --sort=<fields>        Comma separated sort keys, prefix - for descending
  --page=<n>             Page number (list only, default: 1)
  --limit=<n>            Page size (list only, default: 10)
  --json                 Output as JSON
`

type cli struct {
	identity   *service.IdentityService
	categories *service.CategoryService
	contents   *service.ContentService
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	// Check for help
	if command == "help" || command == "--help" || command == "-h" {
		fmt.Println(usage)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	c := &cli{
		identity:   service.NewIdentityService(st.Users, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), cfg.Auth.BcryptCost),
		categories: service.NewCategoryService(st.Categories),
		contents:   service.NewContentService(st.Contents, st.Categories, st.Users),
	}

	flags := parseFlags(os.Args[2:])
	useJSON := flags["json"] == "true"

	switch command {
	case "create-admin":
		err = c.createAdmin(ctx, flags)
	case "create-category":
		err = c.createCategory(ctx, flags)
	case "categories":
		err = c.listCategories(ctx, useJSON)
	case "list":
		err = c.list(ctx, flags, useJSON)
	case "stats":
		err = c.stats(ctx, flags, useJSON)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func (c *cli) createAdmin(ctx context.Context, flags map[string]string) error {
	ack, err := c.identity.Register(ctx, service.RegisterRequest{
		Username: flags["username"],
		Email:    flags["email"],
		Password: flags["password"],
		Role:     string(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}
	fmt.Println(ack.Message)
	return nil
}

func (c *cli) createCategory(ctx context.Context, flags map[string]string) error {
	ack, err := c.categories.CreateCategory(ctx, service.CreateCategoryRequest{
		Name:         flags["name"],
		AllowsImages: flags["images"] == "true",
		AllowsVideos: flags["videos"] == "true",
		AllowsTexts:  flags["texts"] == "true",
	})
	if err != nil {
		return err
	}
	fmt.Println(ack.Message)
	return nil
}

func (c *cli) listCategories(ctx context.Context, useJSON bool) error {
	categories, err := c.categories.ListCategories(ctx)
	if err != nil {
		return err
	}

	if useJSON {
		return printJSON(categories)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tIMAGES\tVIDEOS\tTEXTS\tCREATED\n")
	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\t%s\n",
			category.ID,
			truncate(category.Name, 30),
			category.AllowsImages,
			category.AllowsVideos,
			category.AllowsTexts,
			category.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func (c *cli) list(ctx context.Context, flags map[string]string, useJSON bool) error {
	page, err := c.contents.ListContent(ctx, filterFrom(flags), sortFrom(flags["sort"]), domain.Pagination{
		Page:  atoi(flags["page"]),
		Limit: atoi(flags["limit"]),
	})
	if err != nil {
		return err
	}

	if useJSON {
		return printJSON(page)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tTYPE\tCATEGORY\tCREATOR\tCREATED\n")
	for _, content := range page.Contents {
		category, creator := "-", "-"
		if content.Category != nil {
			category = content.Category.Name
		}
		if content.Creator != nil {
			creator = content.Creator.Username
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			content.ID,
			truncate(content.Title, 30),
			content.Type(),
			truncate(category, 20),
			truncate(creator, 20),
			content.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nPage %d of %d, total: %d\n",
		page.Pagination.CurrentPage, page.Pagination.TotalPages, page.Pagination.TotalCount)
	return nil
}

func (c *cli) stats(ctx context.Context, flags map[string]string, useJSON bool) error {
	page, err := c.contents.ListContent(ctx, filterFrom(flags), nil, domain.Pagination{Page: 1, Limit: 1})
	if err != nil {
		return err
	}

	if useJSON {
		return printJSON(map[string]interface{}{
			"totalCount": page.Pagination.TotalCount,
			"counts":     page.Counts,
		})
	}

	fmt.Println("=== Content Statistics ===")
	fmt.Printf("\nTotal Count: %d\n", page.Pagination.TotalCount)
	fmt.Println("\nBy Type:")
	for _, t := range domain.ContentTypes {
		fmt.Printf("  %-6s: %d\n", t, page.Counts[t])
	}
	return nil
}

func filterFrom(flags map[string]string) domain.ContentFilter {
	return domain.ContentFilter{
		CategoryID: flags["category-id"],
		CreatorID:  flags["creator-id"],
		Type:       flags["type"],
	}
}

func sortFrom(value string) []domain.SortField {
	var fields []domain.SortField
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields = append(fields, domain.SortField{
			Field: strings.TrimPrefix(part, "-"),
			Desc:  strings.HasPrefix(part, "-"),
		})
	}
	return fields
}

// parseFlags reads --key=value and bare --key (as "true") arguments
func parseFlags(args []string) map[string]string {
	flags := make(map[string]string)
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") || len(arg) == 2 {
			continue
		}
		key, value, found := strings.Cut(arg[2:], "=")
		if !found {
			value = "true"
		}
		flags[key] = value
	}
	return flags
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/repository"
	"github.com/noah-isme/edu-portal-api/pkg/validation"
)

// menuFile is the YAML layout accepted by seed-menu.
type menuFile struct {
	Menu []menuEntry `yaml:"menu"`
}

type menuEntry struct {
	Title    string            `yaml:"title" validate:"required"`
	URL      string            `yaml:"url" validate:"required"`
	Position *int              `yaml:"position" validate:"omitempty,gte=0"`
	Children []models.MenuItem `yaml:"children" validate:"dive"`
}

type menuReplacer interface {
	Replace(ctx context.Context, items []models.Menu) error
}

func newSeedMenuCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-menu",
		Short: "Replace the navigation menu with the entries of a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening menu file: %w", err)
			}
			defer f.Close()

			items, err := loadMenu(f)
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := seedMenu(cmd.Context(), repository.NewMenuRepository(e.db), items); err != nil {
				return err
			}
			e.logger.Info("menu seeded", zap.Int("entries", len(items)), zap.String("file", file))
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced menu with %d entries.\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "menu.yaml", "YAML file describing the menu")
	return cmd
}

// loadMenu parses and validates a menu file. Entries without a position
// keep their file order.
func loadMenu(r io.Reader) ([]models.Menu, error) {
	var doc menuFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing menu file: %w", err)
	}

	validate := validation.New()
	items := make([]models.Menu, 0, len(doc.Menu))
	for i, entry := range doc.Menu {
		entry.Title = strings.TrimSpace(entry.Title)
		entry.URL = strings.TrimSpace(entry.URL)
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("menu entry %d: invalid fields %s", i+1, strings.Join(validation.Fields(err), ", "))
		}

		position := i
		if entry.Position != nil {
			position = *entry.Position
		}
		children := make(models.MenuItems, 0, len(entry.Children))
		for _, child := range entry.Children {
			if child.ID == "" {
				child.ID = uuid.NewString()
			}
			children = append(children, child)
		}
		items = append(items, models.Menu{Title: entry.Title, URL: entry.URL, Position: position, Children: children})
	}
	return items, nil
}

func seedMenu(ctx context.Context, store menuReplacer, items []models.Menu) error {
	if err := store.Replace(ctx, items); err != nil {
		return fmt.Errorf("replacing menu: %w", err)
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	wardroberender "github.com/bnema/mira/internal/adapters/render/wardrobe"
	"github.com/bnema/mira/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// itemView is the --json and --yaml shape of a wardrobe item.
type itemView struct {
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
	Label      string     `json:"label" yaml:"label"`
	Color      string     `json:"color" yaml:"color"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
	ClassID    int        `json:"class_id" yaml:"class_id"`
	BBox       [4]float64 `json:"bbox" yaml:"bbox,flow"`
	AddedOn    time.Time  `json:"added_on" yaml:"added_on"`
}

func newItemView(item domain.Item) itemView {
	return itemView{
		ID:         item.ID,
		Label:      item.DisplayLabel(),
		Color:      item.Color,
		Confidence: item.Confidence,
		ClassID:    item.ClassID,
		BBox:       [4]float64{item.BBox.X1, item.BBox.Y1, item.BBox.X2, item.BBox.Y2},
		AddedOn:    item.AddedOn,
	}
}

func newWardrobeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Inspect and extend the virtual wardrobe",
	}

	cmd.AddCommand(newWardrobeListCmd(app), newWardrobeSummaryCmd(app), newWardrobeAddCmd(app))

	return cmd
}

func newWardrobeListCmd(app *app) *cobra.Command {
	var asJSON bool
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved wardrobe items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := app.wardrobe.Load(cmd.Context())

			switch {
			case asJSON:
				return writeItemsJSON(cmd, items)
			case asYAML:
				return writeItemsYAML(cmd, items)
			}

			rendered, err := app.wardrobeRenderer(items, wardroberender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render wardrobe: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print items as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}

func writeItemsJSON(cmd *cobra.Command, items []domain.Item) error {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, newItemView(item))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func writeItemsYAML(cmd *cobra.Command, items []domain.Item) error {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, newItemView(item))
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(views); err != nil {
		return fmt.Errorf("encode wardrobe yaml: %w", err)
	}
	return enc.Close()
}

func newWardrobeSummaryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the wardrobe summary MiraAI is grounded on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.wardrobe.Summarize(cmd.Context()))
			return err
		},
	}
}

func newWardrobeAddCmd(app *app) *cobra.Command {
	var label string
	var color string
	var confidence float64
	var classID int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the wardrobe by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			label = strings.TrimSpace(label)
			if label == "" {
				return errors.New("label is empty")
			}
			if confidence < 0 || confidence > 1 {
				return fmt.Errorf("confidence %.2f is outside [0,1]", confidence)
			}

			saved, err := app.wardrobe.Append(cmd.Context(), domain.Item{
				Label:      label,
				Color:      strings.TrimSpace(color),
				Confidence: confidence,
				ClassID:    classID,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s (id %s)\n", saved.Describe(), saved.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Item label, for example shirt")
	cmd.Flags().StringVar(&color, "color", domain.UnknownColor, "Item color")
	cmd.Flags().Float64Var(&confidence, "confidence", 1, "Confidence in [0,1]")
	cmd.Flags().IntVar(&classID, "class-id", -1, "Detector class id (-1 when added by hand)")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

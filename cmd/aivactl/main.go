// Command aivactl is an operator tool for the Aiva assistant: inspect the
// generated system prompt, send a one-shot message, and seed the content
// store from a JSON file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/content"
	"github.com/aivrasol/aiva/content/redisstore"
	"github.com/aivrasol/aiva/gemini"
	"github.com/aivrasol/aiva/internal/config"
	"github.com/aivrasol/aiva/longcat"
	"github.com/aivrasol/aiva/prompt"
)

func main() {
	godotenv.Load()

	root := &cobra.Command{
		Use:          "aivactl",
		Short:        "Operator tool for the Aiva assistant",
		SilenceUsage: true,
	}
	root.AddCommand(promptCmd(), chatCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func promptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the system prompt built from current site content",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			snapshot := content.LoadSnapshot(cmd.Context(), store)
			fmt.Println(prompt.Build(snapshot))
			return nil
		},
	}
}

func chatCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a one-shot message through the configured provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			store, err := openStore()
			if err != nil {
				return err
			}

			provider := newProvider(cfg)
			snapshot := content.LoadSnapshot(cmd.Context(), store)
			systemPrompt := prompt.Build(snapshot)

			history := []aiva.Message{{Role: aiva.RoleUser, Content: strings.Join(args, " ")}}
			reply, err := provider.Send(cmd.Context(), systemPrompt, history)
			if err != nil {
				return err
			}

			if dump {
				litter.Dump(struct {
					Provider string
					Reply    string
				}{provider.Provider(), reply})
				return nil
			}
			fmt.Println(reply)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the full result structure")
	return cmd
}

// seedFile is the JSON shape accepted by `aivactl seed`: every collection in
// one document, mirroring the CMS export format.
type seedFile struct {
	Services     []content.Service     `json:"services"`
	Projects     []content.Project     `json:"projects"`
	TechStacks   []content.TechStack   `json:"techStacks"`
	Faqs         []content.Faq         `json:"faqs"`
	Testimonials []content.Testimonial `json:"testimonials"`
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load site content from a JSON file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var seed seedFile
			if err := json.Unmarshal(data, &seed); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := store.SetServices(ctx, seed.Services); err != nil {
				return err
			}
			if err := store.SetProjects(ctx, seed.Projects); err != nil {
				return err
			}
			if err := store.SetTechStacks(ctx, seed.TechStacks); err != nil {
				return err
			}
			if err := store.SetFaqs(ctx, seed.Faqs); err != nil {
				return err
			}
			if err := store.SetTestimonials(ctx, seed.Testimonials); err != nil {
				return err
			}

			log.Printf("[INFO] seeded %d services, %d projects, %d tech stacks, %d faqs, %d testimonials",
				len(seed.Services), len(seed.Projects), len(seed.TechStacks), len(seed.Faqs), len(seed.Testimonials))
			return nil
		},
	}
}

func openStore() (*redisstore.Store, error) {
	cfg := config.Load()
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return redisstore.New(rdb), nil
}

func newProvider(cfg config.Config) aiva.ChatProvider {
	if cfg.Provider == config.ProviderGemini {
		return gemini.New(gemini.Options{
			URL:    cfg.GeminiAPIURL,
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	}
	return longcat.New(longcat.Options{
		URL:    cfg.LongCatAPIURL,
		APIKey: cfg.LongCatAPIKey,
		Model:  cfg.LongCatModel,
	})
}

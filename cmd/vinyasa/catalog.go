package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Thiht/transactor"
	"gopkg.in/yaml.v3"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/sqlite"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Categories []catalogCategory `yaml:"categories"`
}

type catalogCategory struct {
	Category string        `yaml:"category"`
	Poses    []catalogPose `yaml:"poses"`
}

type catalogPose struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Instructions    string `yaml:"instructions"`
	Benefits        string `yaml:"benefits"`
	Precautions     string `yaml:"precautions"`
	DurationSeconds int    `yaml:"duration_seconds"`
	Difficulty      string `yaml:"difficulty"`
	Role            string `yaml:"role,omitempty"`
}

func parseCatalog(r io.Reader) ([]vinyasa.PoseRecord, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var poses []vinyasa.PoseRecord
	for _, c := range f.Categories {
		category := strings.TrimSpace(c.Category)
		if category == "" {
			return nil, fmt.Errorf("catalog category without a name")
		}
		for _, p := range c.Poses {
			role, ok := vinyasa.ParsePoseRole(p.Role)
			if !ok {
				return nil, fmt.Errorf("pose %q: unknown role %q", p.Name, p.Role)
			}
			difficulty := vinyasa.Difficulty(strings.ToLower(strings.TrimSpace(p.Difficulty)))
			switch difficulty {
			case vinyasa.Beginner, vinyasa.Intermediate, vinyasa.Advanced:
			default:
				return nil, fmt.Errorf("pose %q: unknown difficulty %q", p.Name, p.Difficulty)
			}
			poses = append(poses, vinyasa.PoseRecord{
				Name:         strings.TrimSpace(p.Name),
				Description:  strings.TrimSpace(p.Description),
				Instructions: strings.TrimSpace(p.Instructions),
				Benefits:     strings.TrimSpace(p.Benefits),
				Precautions:  strings.TrimSpace(p.Precautions),
				Duration:     time.Duration(p.DurationSeconds) * time.Second,
				Difficulty:   difficulty,
				Category:     vinyasa.Category(category),
				Role:         role,
			})
		}
	}
	return poses, nil
}

type importResult struct {
	inserted, updated int
}

// importCatalog upserts poses by name in a single transaction.
func importCatalog(ctx context.Context, repo vinyasa.PoseRepo, tx transactor.Transactor, poses []vinyasa.PoseRecord) (importResult, error) {
	var res importResult
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, p := range poses {
			existing, err := repo.GetPoseByName(ctx, p.Name)
			switch {
			case errors.Is(err, sqlite.ErrNotFound):
				if _, err := repo.InsertPose(ctx, p); err != nil {
					return fmt.Errorf("insert %q: %w", p.Name, err)
				}
				res.inserted++
			case err != nil:
				return err
			default:
				if _, err := repo.UpdatePose(ctx, existing.ID, p); err != nil {
					return fmt.Errorf("update %q: %w", p.Name, err)
				}
				res.updated++
			}
		}
		return nil
	})
	return res, err
}

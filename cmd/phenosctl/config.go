package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"phenos/internal/model"
	"phenos/internal/motion"
	"phenos/internal/ui"
	phenosapi "phenos/pkg/phenos"
)

type familySpec struct {
	Individuals []individualSpec `json:"individuals"`
	Unions      []unionSpec      `json:"unions"`
	Child       individualSpec   `json:"child"`
}

type individualSpec struct {
	ID      string   `json:"id"`
	Markers []string `json:"markers"`
}

type unionSpec struct {
	UnionID string `json:"union_id"`
	Mother  string `json:"mother"`
	Father  string `json:"father"`
}

func loadFamilySpec(path string) (familySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return familySpec{}, err
	}
	var spec familySpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return familySpec{}, fmt.Errorf("parse family spec: %w", err)
	}
	if spec.Child.ID == "" {
		return familySpec{}, fmt.Errorf("family spec is missing a child entry")
	}
	return spec, nil
}

func predictFromSpec(ctx context.Context, client *phenosapi.Client, spec familySpec) (model.NeurodivergenceProfile, error) {
	for _, individual := range spec.Individuals {
		err := client.RegisterIndividual(model.Individual{ID: individual.ID, Markers: individual.Markers})
		if err != nil {
			return model.NeurodivergenceProfile{}, fmt.Errorf("register %s: %w", individual.ID, err)
		}
	}
	for _, union := range spec.Unions {
		if _, err := client.RegisterUnion(union.UnionID, union.Mother, union.Father); err != nil {
			return model.NeurodivergenceProfile{}, fmt.Errorf("register union %s: %w", union.UnionID, err)
		}
	}
	return client.Predict(ctx, spec.Child.ID, spec.Child.Markers)
}

func loadGrid(path string) (motion.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return motion.Grid{}, err
	}
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return motion.Grid{}, fmt.Errorf("parse grid: %w", err)
	}
	if len(rows) != motion.GridSize {
		return motion.Grid{}, fmt.Errorf("grid must have %d rows, got %d", motion.GridSize, len(rows))
	}

	var grid motion.Grid
	for i, row := range rows {
		if len(row) != motion.GridSize {
			return motion.Grid{}, fmt.Errorf("grid row %d must have %d cells, got %d", i, motion.GridSize, len(row))
		}
		copy(grid[i][:], row)
	}
	return grid, nil
}

func loadProfile(path string) (model.NeurodivergenceProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.NeurodivergenceProfile{}, err
	}
	var profile model.NeurodivergenceProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.NeurodivergenceProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	return profile, nil
}

// newReportingSurface builds a simulated surface whose metrics feed the
// learning tracker during demo passes.
func newReportingSurface(satisfaction float64) *ui.SimSurface {
	surface := ui.NewSimSurface()
	surface.SetMetrics(model.InteractionMetrics{
		TaskCompletionTime:   18,
		ErrorRate:            0.05,
		NavigationEfficiency: 0.8,
		CognitiveLoad:        0.35,
		UserSatisfaction:     satisfaction,
	})
	return surface
}

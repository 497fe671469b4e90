package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the SPARQL endpoint from the CLI",
	}
	cmd.AddCommand(querySearchCmd())
	cmd.AddCommand(queryEntityCmd())
	cmd.AddCommand(queryDetailsCmd())
	cmd.AddCommand(queryRelationsCmd())
	cmd.AddCommand(queryMembersCmd())
	cmd.AddCommand(queryUnitCmd())
	cmd.AddCommand(queryClothesCmd())
	cmd.AddCommand(queryIdolClothesCmd())
	cmd.AddCommand(querySparqlCmd())
	return cmd
}

// runQuery loads the engine, calls fn and prints its result as indented JSON.
func runQuery(fn func(ctx context.Context, a *app) (any, error)) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := fn(context.Background(), a)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

func floatFlag(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func querySearchCmd() *cobra.Command {
	var p sparql.SearchEntitiesParams
	var minHeight, maxHeight, minWeight, maxWeight float64
	var limit, offset float64
	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search idols and staff",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p.Q = args[0]
			}
			p.MinHeight = floatFlag(cmd, "min-height", minHeight)
			p.MaxHeight = floatFlag(cmd, "max-height", maxHeight)
			p.MinWeight = floatFlag(cmd, "min-weight", minWeight)
			p.MaxWeight = floatFlag(cmd, "max-weight", maxWeight)
			p.Limit = floatFlag(cmd, "limit", limit)
			p.Offset = floatFlag(cmd, "offset", offset)
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.SearchEntities(ctx, p)
			})
		},
	}
	cmd.Flags().StringVar(&p.Brand, "brand", "", "Brand to filter")
	cmd.Flags().Float64Var(&minHeight, "min-height", 0, "Minimum height in cm")
	cmd.Flags().Float64Var(&maxHeight, "max-height", 0, "Maximum height in cm")
	cmd.Flags().Float64Var(&minWeight, "min-weight", 0, "Minimum weight in kg")
	cmd.Flags().Float64Var(&maxWeight, "max-weight", 0, "Maximum weight in kg")
	cmd.Flags().StringVar(&p.SortBy, "sort-by", "", "Sort key: name, height, weight or birthDate")
	cmd.Flags().StringVar(&p.SortOrder, "sort-order", "", "Sort order: asc or desc")
	cmd.Flags().Float64Var(&limit, "limit", sparql.DefaultLimit, "Maximum number of results")
	cmd.Flags().Float64Var(&offset, "offset", 0, "Number of results to skip")
	return cmd
}

func queryEntityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entity <iri>",
		Short: "Show name, label and context of one entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.GetEntity(ctx, sparql.GetEntityParams{URI: args[0]})
			})
		},
	}
}

func queryDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details <iri>",
		Short: "Show the detailed profile fields of one entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.GetEntityDetails(ctx, sparql.GetEntityDetailsParams{ID: args[0]})
			})
		},
	}
}

func queryRelationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations <iri>",
		Short: "List the units an entity belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.GetEntityRelations(ctx, sparql.GetEntityRelationsParams{ID: args[0]})
			})
		},
	}
}

func queryMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <unit-iri>",
		Short: "List members of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.GetUnitMembers(ctx, sparql.GetUnitMembersParams{ID: args[0]})
			})
		},
	}
}

func queryUnitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unit <name>",
		Short: "Find units by name and list their members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.GetUnitMembersByName(ctx, sparql.GetUnitMembersByNameParams{Name: args[0]})
			})
		},
	}
}

func queryClothesCmd() *cobra.Command {
	var limit, offset float64
	cmd := &cobra.Command{
		Use:   "clothes [keyword]",
		Short: "Search costumes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p sparql.SearchClothesParams
			if len(args) == 1 {
				p.Q = args[0]
			}
			p.Limit = floatFlag(cmd, "limit", limit)
			p.Offset = floatFlag(cmd, "offset", offset)
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.SearchClothes(ctx, p)
			})
		},
	}
	cmd.Flags().Float64Var(&limit, "limit", sparql.DefaultLimit, "Maximum number of results")
	cmd.Flags().Float64Var(&offset, "offset", 0, "Number of results to skip")
	return cmd
}

func queryIdolClothesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "idol-clothes <idol-iri>",
		Short: "List costumes owned by an idol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(func(ctx context.Context, a *app) (any, error) {
				return a.engine.GetIdolClothes(ctx, sparql.GetIdolClothesParams{ID: args[0]})
			})
		},
	}
}

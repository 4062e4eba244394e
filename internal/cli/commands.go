package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"husbandry-tracker/internal/clientcache"
	"husbandry-tracker/internal/domain/stats"
)

func (a *app) animalsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "animals", Short: "Manage animals"}
	cmd.AddCommand(
		a.listCommand(clientcache.EntityAnimals),
		a.addCommand(clientcache.EntityAnimals, "animal", animalCreateFields),
		a.updateCommand(clientcache.EntityAnimals, "animal", animalUpdateFields, ""),
		a.deleteCommand(clientcache.EntityAnimals, "animal"),
		a.eligibleCommand(),
	)
	return cmd
}

func (a *app) breedingsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "breedings", Short: "Manage breedings"}
	cmd.AddCommand(
		a.listCommand(clientcache.EntityBreedings),
		a.addCommand(clientcache.EntityBreedings, "breeding", breedingCreateFields),
		a.updateCommand(clientcache.EntityBreedings, "breeding", breedingUpdateFields, "actualDate"),
		a.deleteCommand(clientcache.EntityBreedings, "breeding"),
	)
	return cmd
}

func (a *app) hatchingsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "hatchings", Short: "Manage hatchings"}
	cmd.AddCommand(
		a.listCommand(clientcache.EntityHatchings),
		a.addCommand(clientcache.EntityHatchings, "hatching", hatchingCreateFields),
		a.updateCommand(clientcache.EntityHatchings, "hatching", hatchingUpdateFields, "actualHatchDate"),
		a.deleteCommand(clientcache.EntityHatchings, "hatching"),
	)
	return cmd
}

func (a *app) listCommand(e clientcache.Entity) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s, newest first", e),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cache.Load(cmd.Context()); err != nil {
				return err
			}
			renderState(a.out, a.styles, a.cache)
			switch e {
			case clientcache.EntityAnimals:
				renderAnimals(a.out, a.styles, a.cache.Animals())
			case clientcache.EntityBreedings:
				renderBreedings(a.out, a.styles, a.cache.Breedings())
			case clientcache.EntityHatchings:
				renderHatchings(a.out, a.styles, a.cache.Hatchings())
			}
			return nil
		},
	}
}

func (a *app) addCommand(e clientcache.Entity, noun string, specs []fieldSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a " + noun,
		Args:  cobra.NoArgs,
	}
	bindFields(cmd, specs)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		fields, err := collectFields(cmd, specs)
		if err != nil {
			return err
		}
		if err := a.cache.Load(cmd.Context()); err != nil {
			return err
		}
		id, err := a.cache.Create(cmd.Context(), e, fields)
		if err != nil {
			return err
		}
		a.reportWrite("created", noun, id)
		return nil
	}
	return cmd
}

// clearKey es el campo de fecha que --clear-actual manda en null; vacío si no aplica.
func (a *app) updateCommand(e clientcache.Entity, noun string, specs []fieldSpec, clearKey string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + noun + "; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
	}
	bindFields(cmd, specs)
	if clearKey != "" {
		cmd.Flags().Bool("clear-actual", false, "clear the recorded actual date")
		cmd.MarkFlagsMutuallyExclusive("clear-actual", "actual")
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		fields, err := collectFields(cmd, specs)
		if err != nil {
			return err
		}
		if clearKey != "" {
			if clearActual, _ := cmd.Flags().GetBool("clear-actual"); clearActual {
				fields[clearKey] = nil
			}
		}
		if len(fields) == 0 {
			return errors.New("nothing to update: pass at least one field flag")
		}
		if err := a.cache.Load(cmd.Context()); err != nil {
			return err
		}
		if err := a.cache.Update(cmd.Context(), e, args[0], fields); err != nil {
			return err
		}
		a.reportWrite("updated", noun, args[0])
		return nil
	}
	return cmd
}

func (a *app) deleteCommand(e clientcache.Entity, noun string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cache.Load(cmd.Context()); err != nil {
				return err
			}
			if err := a.cache.Delete(cmd.Context(), e, args[0]); err != nil {
				return err
			}
			a.reportWrite("deleted", noun, args[0])
			return nil
		},
	}
}

func (a *app) eligibleCommand() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List breeding candidates for a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cache.Load(cmd.Context()); err != nil {
				return err
			}
			switch role {
			case "male":
				renderAnimals(a.out, a.styles, a.cache.EligibleMales())
			case "female":
				renderAnimals(a.out, a.styles, a.cache.EligibleFemales())
			default:
				return fmt.Errorf("invalid role %q: use male or female", role)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "male or female")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func (a *app) syncCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "sync", Short: "Inspect and reconcile the local fallback"}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show sync state and pending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cache.Load(cmd.Context()); err != nil {
				return err
			}
			pending := a.cache.Pending()
			fmt.Fprintf(a.out, "server: %s\n", a.serverHealth(cmd.Context()))
			fmt.Fprintf(a.out, "state: %s\n", a.cache.State())
			fmt.Fprintf(a.out, "pending: %d\n", len(pending))
			for _, op := range pending {
				fmt.Fprintf(a.out, "  %s  %s\n", op.QueuedAt.Local().Format("2006-01-02 15:04"), op)
			}
			return nil
		},
	}

	reconcile := &cobra.Command{
		Use:   "reconcile",
		Short: "Replay pending changes against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			before := len(a.cache.Pending())
			conflicts, err := a.cache.Reconcile(cmd.Context())
			renderConflicts(a.out, a.styles, conflicts)
			if err != nil {
				if errors.Is(err, clientcache.ErrUnreachable) {
					return fmt.Errorf("server still unreachable, %d change(s) kept: %w", len(a.cache.Pending()), err)
				}
				return err
			}
			fmt.Fprintf(a.out, "reconciled %d change(s), state: %s\n", before-len(conflicts), a.cache.State())
			return nil
		},
	}

	cmd.AddCommand(status, reconcile)
	return cmd
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts by status (server only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			printCounts := func(name string, counts []stats.StatusCount) {
				fmt.Fprintln(a.out, a.styles.header.Render(name))
				if len(counts) == 0 {
					fmt.Fprintln(a.out, a.styles.muted.Render("  none"))
				}
				for _, c := range counts {
					fmt.Fprintf(a.out, "  %-12s %d\n", c.Status, c.Count)
				}
			}
			printCounts("animals", snap.Animals)
			printCounts("breedings", snap.Breedings)
			printCounts("hatchings", snap.Hatchings)
			return nil
		},
	}
}

// serverHealth nunca falla: el estado del servidor es parte del reporte.
func (a *app) serverHealth(ctx context.Context) string {
	h, err := a.api.Health(ctx)
	switch {
	case err == nil:
		return fmt.Sprintf("%s (%s)", h.Status, h.Timestamp.Local().Format("2006-01-02 15:04:05"))
	case errors.Is(err, clientcache.ErrUnreachable):
		return "unreachable"
	default:
		return "error: " + err.Error()
	}
}

func (a *app) reportWrite(verb, noun, id string) {
	if a.cache.State() == clientcache.StateSynced {
		fmt.Fprintf(a.out, "%s %s %s\n", verb, noun, id)
		return
	}
	fmt.Fprintln(a.out, a.styles.warn.Render(fmt.Sprintf(
		"%s %s %s locally; server unreachable, queued (run `husbandryctl sync reconcile`)", verb, noun, id)))
}

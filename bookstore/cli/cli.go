// Package cli is the bookstorectl admin tool. It opens the same storage the
// server uses, so it must not run against a medium a live server holds.
package cli

import (
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/app"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/repository"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/service"
	"github.com/Astemirdum/bookstore-service/pkg/stable/s3backup"
)

type Deps struct {
	Open   func(ctx context.Context) (*app.Storage, error)
	Backup func(ctx context.Context) (*s3backup.Backup, error)
	Log    *zap.Logger
}

func NewRootCmd(d Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookstorectl",
		Short:         "Inspect and maintain the bookstore store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		customersCmd(d),
		booksCmd(d),
		regionsCmd(d),
		backupCmd(d),
		restoreCmd(d),
	)
	return root
}

func customersCmd(d Deps) *cobra.Command {
	cmd := &cobra.Command{Use: "customers", Short: "Manage customers"}

	var payload model.CustomerPayload
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a customer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), d, func(svc *service.Service) error {
				c, err := svc.CreateCustomer(cmd.Context(), payload)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), c)
			})
		},
	}
	create.Flags().StringVar(&payload.Username, "username", "", "unique username")
	create.Flags().StringVar((*string)(&payload.Role), "role", string(model.RoleCustomer), "Admin, StoreManager or Customer")
	_ = create.MarkFlagRequired("username")

	list := &cobra.Command{
		Use:   "list",
		Short: "List customers in id order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), d, func(svc *service.Service) error {
				customers, err := svc.GetCustomers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), customers)
			})
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func booksCmd(d Deps) *cobra.Command {
	cmd := &cobra.Command{Use: "books", Short: "Inspect books"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List books in id order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), d, func(svc *service.Service) error {
				books, err := svc.GetBooks(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), books)
			})
		},
	})
	return cmd
}

func regionsCmd(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "Show record counts and persisted region sizes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			storage, err := d.Open(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()

			svc, err := app.NewService(ctx, storage, d.Log)
			if err != nil {
				return err
			}
			persisted, err := storage.Regions(ctx)
			if err != nil {
				return errors.Wrap(err, "regions")
			}
			type report struct {
				model.Stats
				Persisted map[uint8]int64 `json:"persistedBytes"`
			}
			r := report{Stats: svc.Stats(ctx), Persisted: make(map[uint8]int64, len(persisted))}
			for id, size := range persisted {
				r.Persisted[uint8(id)] = size
			}
			return printJSON(cmd.OutOrStdout(), r)
		},
	}
}

func backupCmd(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload every region to the configured S3 bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			storage, err := d.Open(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()
			b, err := d.Backup(ctx)
			if err != nil {
				return err
			}
			return b.Save(ctx, storage.Pages, repository.Regions...)
		},
	}
}

func restoreCmd(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Write every region back from the configured S3 bucket into an empty store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			storage, err := d.Open(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()
			b, err := d.Backup(ctx)
			if err != nil {
				return err
			}
			return b.Restore(ctx, storage.Pages, repository.Regions...)
		},
	}
}

func withService(ctx context.Context, d Deps, fn func(svc *service.Service) error) error {
	storage, err := d.Open(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	svc, err := app.NewService(ctx, storage, d.Log)
	if err != nil {
		return err
	}
	return fn(svc)
}

func printJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

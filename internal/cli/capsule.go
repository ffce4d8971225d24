package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ListCapsules prints every stored capsule key.
func ListCapsules(ctx context.Context, opts StoreOptions, out io.Writer, logger *slog.Logger) error {
	manager, closeStore, err := OpenManager(opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	keys, err := manager.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing capsules: %w", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(out, "No capsules found.")
		return nil
	}

	fmt.Fprintln(out, "Capsules:")
	for _, k := range keys {
		fmt.Fprintln(out, "- "+k)
	}
	return nil
}

// InspectCapsule prints a capsule as indented JSON.
func InspectCapsule(ctx context.Context, opts StoreOptions, key string, out io.Writer, logger *slog.Logger) error {
	manager, closeStore, err := OpenManager(opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	state, err := manager.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("error loading capsule '%s': %w", key, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling capsule: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// RemoveCapsules deletes every key, reporting each one. It fails if any removal did.
func RemoveCapsules(ctx context.Context, opts StoreOptions, keys []string, out io.Writer, logger *slog.Logger) error {
	manager, closeStore, err := OpenManager(opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var errs []error
	for _, key := range keys {
		if err := manager.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", key, err))
			continue
		}
		fmt.Fprintf(out, "Removed capsule '%s'\n", key)
	}
	return errors.Join(errs...)
}

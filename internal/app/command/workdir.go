package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	workingDirFlag = "working-dir"
)

func AddWorkDirFlag(cmd *cobra.Command) {
	cwd, _ := os.Getwd()

	cmd.PersistentFlags().StringP(workingDirFlag, "w", cwd, "define working directory")
}

func GetWorkingDir(cmd *cobra.Command) (string, error) {
	baseDir, err := cmd.Flags().GetString(workingDirFlag)
	if err != nil {
		return "", fmt.Errorf("get working-dir flag: %w", err)
	}
	if baseDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(baseDir)
}

// ResolvePath makes a relative path relative to the working directory.
func ResolvePath(cmd *cobra.Command, path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	baseDir, err := GetWorkingDir(cmd)
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, path), nil
}

// Command tideatlas extracts harmonic constants from gridded tidal
// atlases and predicts tide series from them.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.ngs.io/tide-atlas/internal/adapter/atlas"
	"go.ngs.io/tide-atlas/internal/adapter/interp"
	constcsv "go.ngs.io/tide-atlas/internal/adapter/store/csv"
	"go.ngs.io/tide-atlas/internal/config"
	"go.ngs.io/tide-atlas/internal/domain"
	"go.ngs.io/tide-atlas/internal/usecase"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	root := &cobra.Command{
		Use:           "tideatlas",
		Short:         "Tide prediction from gridded harmonic atlases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(extractCmd(logger), predictCmd(logger), modelsCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

// loadModel resolves a model name through the registry file.
func loadModel(registryPath, name string) (config.Model, error) {
	registry, err := config.Load(registryPath)
	if err != nil {
		return config.Model{}, err
	}
	model, ok := registry.Lookup(name)
	if !ok {
		return config.Model{}, fmt.Errorf("unknown model %q (available: %v)", name, registry.Names())
	}
	return model, nil
}

// readPoints parses a lon,lat per line points file. Blank lines and
// #-comments are skipped.
func readPoints(path string) ([]domain.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening points file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var points []domain.Point
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Split(text, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected lon,lat", line)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad longitude: %w", line, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad latitude: %w", line, err)
		}
		points = append(points, domain.Point{Lon: lon, Lat: lat})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, errors.New("points file contains no points")
	}
	return points, nil
}

func extractCmd(logger *zap.Logger) *cobra.Command {
	var (
		registryPath string
		modelName    string
		pointsPath   string
		outPath      string
		method       string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Interpolate harmonic constants from an atlas onto query points",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(registryPath, modelName)
			if err != nil {
				return err
			}
			points, err := readPoints(pointsPath)
			if err != nil {
				return err
			}
			variable, err := atlas.ParseVariable(variableOf(model))
			if err != nil {
				return err
			}
			m, err := interp.ParseMethod(method)
			if err != nil {
				return err
			}

			logger.Info("extracting harmonic constants",
				zap.String("model", model.Name),
				zap.Int("points", len(points)),
				zap.Int("constituent_files", len(model.ConstituentFiles)),
			)

			constants, err := usecase.ExtractConstants(points, model.Directory, model.GridFile, model.ConstituentFiles, usecase.ExtractOptions{
				Variable: variable,
				Method:   m,
				Gzip:     model.Gzip,
				Scale:    model.Scale,
			})
			if err != nil {
				return err
			}
			if err := constcsv.Write(outPath, points, constants); err != nil {
				return err
			}
			logger.Info("wrote constants", zap.String("path", outPath), zap.Strings("constituents", constants.Constituents))
			return nil
		},
	}
	cmd.Flags().StringVar(&registryPath, "models", "./models.yaml", "model registry YAML")
	cmd.Flags().StringVar(&modelName, "model", "", "model name from the registry")
	cmd.Flags().StringVar(&pointsPath, "points", "", "points file, one lon,lat per line")
	cmd.Flags().StringVar(&outPath, "out", "constants.csv", "output constants CSV")
	cmd.Flags().StringVar(&method, "method", "spline", "interpolation method: spline, linear or nearest")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("points")
	return cmd
}

func predictCmd(logger *zap.Logger) *cobra.Command {
	var (
		constantsPath string
		startStr      string
		endStr        string
		intervalStr   string
		deltaT        float64
		convention    string
		outPath       string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Reconstruct tide series from extracted harmonic constants",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, constants, err := constcsv.Read(constantsPath)
			if err != nil {
				return err
			}
			start, err := time.Parse(time.RFC3339, startStr)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}
			end, err := time.Parse(time.RFC3339, endStr)
			if err != nil {
				return fmt.Errorf("invalid end time: %w", err)
			}
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				return fmt.Errorf("invalid interval: %w", err)
			}
			if !start.Before(end) {
				return errors.New("start time must be before end time")
			}
			conv := domain.Convention(convention)
			switch conv {
			case domain.ConventionOTIS, domain.ConventionATLAS, domain.ConventionGOT:
			default:
				return fmt.Errorf("unknown convention %q (use OTIS, ATLAS or GOT)", convention)
			}

			var days []float64
			var stamps []string
			for t := start; !t.After(end); t = t.Add(interval) {
				days = append(days, domain.TideTime(t))
				stamps = append(stamps, t.UTC().Format(time.RFC3339))
			}

			rows := make([][]domain.HarmonicConstant, constants.NPoints())
			for p := range rows {
				rows[p] = constants.HarmonicRow(p)
			}
			series, err := domain.PredictMatrix(days, rows, constants.Constituents, deltaT, conv)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			fmt.Fprintln(out, "time,lon,lat,height_m,valid")
			for p, s := range series {
				for i := range days {
					valid := 1
					if s.Mask[i] {
						valid = 0
					}
					fmt.Fprintf(out, "%s,%g,%g,%g,%d\n", stamps[i], points[p].Lon, points[p].Lat, s.Values[i], valid)
				}
			}
			logger.Info("prediction complete",
				zap.Int("points", len(series)),
				zap.Int("samples", len(days)),
				zap.String("convention", convention),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&constantsPath, "constants", "constants.csv", "constants CSV from extract")
	cmd.Flags().StringVar(&startStr, "start", "", "start time (RFC3339)")
	cmd.Flags().StringVar(&endStr, "end", "", "end time (RFC3339)")
	cmd.Flags().StringVar(&intervalStr, "interval", "10m", "sample interval")
	cmd.Flags().Float64Var(&deltaT, "delta-t", 0, "ephemeris time offset in days")
	cmd.Flags().StringVar(&convention, "convention", "OTIS", "nodal correction convention: OTIS, ATLAS or GOT")
	cmd.Flags().StringVar(&outPath, "out", "", "output CSV (default stdout)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func modelsCmd() *cobra.Command {
	var registryPath string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := config.Load(registryPath)
			if err != nil {
				return err
			}
			for _, m := range registry.Models {
				fmt.Printf("%s\t%s (%d constituents, variable %s)\n", m.Name, m.GridFile, len(m.ConstituentFiles), variableOf(m))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&registryPath, "models", "./models.yaml", "model registry YAML")
	return cmd
}

func variableOf(m config.Model) string {
	if m.Variable == "" {
		return "z"
	}
	return m.Variable
}

package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helloteeco/Edge-sub001/internal/comps"
)

var (
	compsFile      string
	compsMarket    string
	compsJSON      bool
	compsCache     bool
	compsBedrooms  int
	compsBathrooms float64
	compsGuests    int
	compsLat       float64
	compsLng       float64
)

var compsCmd = &cobra.Command{
	Use:   "comps",
	Short: "Rank comparable listings against a target property",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := loadCompPool(cmd)
		if err != nil {
			return err
		}

		target := comps.Target{
			Latitude:  compsLat,
			Longitude: compsLng,
			Bedrooms:  compsBedrooms,
			Bathrooms: compsBathrooms,
			Guests:    compsGuests,
		}
		result := comps.Rank(pool, target)

		if compsCache && compsMarket != "" && compsFile != "" {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ttl := time.Duration(cfg.Comps.CacheTTLHours) * time.Hour
			if err := s.SetCompPool(ctx, compsMarket, pool, ttl); err != nil {
				return err
			}
			zap.L().Info("comp pool cached",
				zap.String("market", compsMarket),
				zap.Int("comps", len(pool)),
			)
		}

		if compsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(result), "comps: encode")
		}
		return renderCompsTable(result)
	},
}

// loadCompPool reads the comp pool from --file, falling back to the cached
// pool for --market.
func loadCompPool(cmd *cobra.Command) ([]comps.Comp, error) {
	if compsFile != "" {
		raw, err := os.ReadFile(compsFile)
		if err != nil {
			return nil, eris.Wrapf(err, "comps: read %s", compsFile)
		}
		var pool []comps.Comp
		if err := json.Unmarshal(raw, &pool); err != nil {
			return nil, eris.Wrapf(err, "comps: parse %s", compsFile)
		}
		return pool, nil
	}

	if compsMarket == "" {
		return nil, eris.New("comps: either --file or --market is required")
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer s.Close()

	cached, err := s.GetCompPool(cmd.Context(), compsMarket)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, eris.Errorf("comps: no cached pool for market %s", compsMarket)
	}
	return cached.Comps, nil
}

func init() {
	compsCmd.Flags().StringVar(&compsFile, "file", "", "JSON file with the comp pool")
	compsCmd.Flags().StringVar(&compsMarket, "market", "", "market id for cached pools")
	compsCmd.Flags().BoolVar(&compsJSON, "json", false, "emit JSON instead of a table")
	compsCmd.Flags().BoolVar(&compsCache, "cache", false, "cache the pool under --market")
	compsCmd.Flags().IntVar(&compsBedrooms, "bedrooms", 3, "target bedroom count")
	compsCmd.Flags().Float64Var(&compsBathrooms, "bathrooms", 0, "target bathroom count (default derived)")
	compsCmd.Flags().IntVar(&compsGuests, "guests", 0, "target guest capacity (default derived)")
	compsCmd.Flags().Float64Var(&compsLat, "lat", 0, "target latitude")
	compsCmd.Flags().Float64Var(&compsLng, "lng", 0, "target longitude")
	rootCmd.AddCommand(compsCmd)
}

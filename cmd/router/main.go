package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/geo"
	"github.com/lintang-b-s/sheltr/pkg/geometry"
	"github.com/lintang-b-s/sheltr/pkg/logger"
	"github.com/lintang-b-s/sheltr/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	segmentsFile  = flag.String("segments", "", "segment safety csv (HubName, pred_prob_safe[, pred_safe]), defaults to data.segments_file")
	graphFile     = flag.String("graph", "", "edge csv (from, to, cost, road_segment_id), defaults to data.graph_file")
	stableIds     = flag.Bool("stable_ids", false, "road_segment_id values are HubName ids instead of safety row indices")
	startNode     = flag.String("start", "", "start node as planar \"x,y\"")
	endNode       = flag.String("end", "", "end node as planar \"x,y\"")
	costName      = flag.String("cost", "combined", "cost function: distance, safety, combined or flood_risk")
	compare       = flag.Bool("compare", false, "also route with every cost function and print a comparison")
	jsonOut       = flag.String("json", "", "export the route as JSON to this file")
	geojsonOut    = flag.String("geojson", "", "export the route as GeoJSON (lon/lat) to this file")
	numSamples    = flag.Int("samples", 5, "number of sample routes when no start/end is given")
	sampleSeed    = flag.Uint64("seed", 42, "seed of the sample route generator")
	minComponent  = flag.Int("min_component", 0, "minimum connected component size, defaults to routing.min_component_size")
	separatorLine = strings.Repeat("=", 60)
)

func main() {
	flag.Parse()
	log, err := logger.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(); err != nil {
		log.Fatal("read config", zap.Error(err))
	}
	cfg := engine.Config{
		SegmentsFile:      firstNonEmpty(*segmentsFile, viper.GetString("data.segments_file")),
		GraphFile:         firstNonEmpty(*graphFile, viper.GetString("data.graph_file")),
		ProvidesStableIds: *stableIds || viper.GetBool("data.provides_stable_ids"),
		MinComponentSize:  viper.GetInt("routing.min_component_size"),
		GraphCacheSize:    viper.GetInt("routing.graph_cache_size"),
	}
	if *minComponent > 0 {
		cfg.MinComponentSize = *minComponent
	}

	eng, err := engine.NewEngineFromFiles(cfg, log, nil)
	if err != nil {
		log.Fatal("load routing data", zap.Error(err))
	}
	printNetwork(eng.NetworkSummary())

	strategy, err := costfunction.ParseStrategy(*costName)
	if err != nil {
		log.Fatal("cost function", zap.Error(err))
	}

	if *startNode == "" || *endNode == "" {
		runSamples(eng, strategy, log)
		return
	}

	start, err := datastructure.ParseCoordKey(*startNode)
	if err != nil {
		log.Fatal("start", zap.Error(err))
	}
	end, err := datastructure.ParseCoordKey(*endNode)
	if err != nil {
		log.Fatal("end", zap.Error(err))
	}

	fmt.Println(separatorLine)
	fmt.Println("FINDING OPTIMAL ROUTE")
	fmt.Println(separatorLine)
	res, err := eng.FindRoute(start, end, strategy)
	if err != nil {
		log.Fatal("route", zap.Error(err))
	}
	printRoute(res)
	if !res.Success {
		os.Exit(1)
	}

	if *compare {
		printComparison(eng.CompareStrategies(start, end))
	}
	if err := export(res, strategy, log); err != nil {
		log.Fatal("export route", zap.Error(err))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func printNetwork(ns engine.NetworkSummary) {
	fmt.Println(separatorLine)
	fmt.Println("NETWORK STRUCTURE")
	fmt.Println(separatorLine)
	fmt.Printf("Edge records: %d, nodes: %d\n", ns.NumEdgeRecords, ns.NumNodes)
	fmt.Printf("Connected components: %d\n", ns.NumComponents)
	fmt.Printf("  Largest: %d\n", ns.LargestComponent)
	fmt.Printf("  Top %d: %v\n", len(ns.TopComponentSizes), ns.TopComponentSizes)
	fmt.Printf("Routing component: %d nodes (minimum %d), %d edges, density %.4f\n",
		ns.SelectedComponentSize, ns.MinComponentSize, ns.GraphEdges, ns.Density)
	fmt.Printf("Segments: %d, safety mean %.3f min %.3f max %.3f\n",
		ns.NumSegments, ns.MeanSafety, ns.MinSafety, ns.MaxSafety)
}

func printRoute(res *engine.RouteResult) {
	if res.StartSnap.Snapped {
		fmt.Printf("Using closest start node: %s (distance: %.1fm)\n", res.StartSnap.Node, res.StartSnap.Distance)
	}
	if res.EndSnap.Snapped {
		fmt.Printf("Using closest end node: %s (distance: %.1fm)\n", res.EndSnap.Node, res.EndSnap.Distance)
	}
	if !res.Success {
		fmt.Printf("No route (%s): %s\n", res.Strategy, res.FailureReason)
		return
	}
	d := res.Detail
	fmt.Printf("Cost function: %s\n", res.Strategy)
	fmt.Printf("  Nodes: %d, segments: %d\n", len(res.Path), d.NumSegments())
	fmt.Printf("  Total cost: %.2f\n", res.TotalCost)
	fmt.Printf("  Distance: %.2fm\n", d.TotalDistance)
	fmt.Printf("  Safety: avg %.3f, min %.3f, max %.3f, std %.3f\n", d.AvgSafety, d.MinSafety, d.MaxSafety, d.SafetyStd)
}

func printComparison(cmp *engine.Comparison) {
	fmt.Println()
	fmt.Println(separatorLine)
	fmt.Println("COMPARING ROUTING STRATEGIES")
	fmt.Println(separatorLine)
	fmt.Printf("%-12s %12s %10s %10s %9s %8s\n", "strategy", "distance(m)", "avg safety", "min safety", "segments", "x dist")
	for _, row := range cmp.Summaries() {
		fmt.Printf("%-12s %12.2f %10.3f %10.3f %9d %8.2f\n", row.Strategy, row.TotalDistance, row.AvgSafety,
			row.MinSafety, row.NumSegments, row.DistanceRatio)
	}
	for s, reason := range cmp.Failures {
		fmt.Printf("%-12s failed: %s\n", s, reason)
	}
}

func runSamples(eng *engine.Engine, strategy costfunction.Strategy, log *zap.Logger) {
	fmt.Println()
	fmt.Println(separatorLine)
	fmt.Printf("GENERATING %d SAMPLE ROUTES\n", *numSamples)
	fmt.Println(separatorLine)
	routes, err := eng.SampleRoutes(*numSamples, *sampleSeed, strategy)
	if err != nil {
		log.Fatal("sample routes", zap.Error(err))
	}
	var best *engine.RouteResult
	for i, res := range routes {
		fmt.Printf("\nSample route %d: %s -> %s\n", i+1, res.Path[0], res.Path[len(res.Path)-1])
		printRoute(res)
		if best == nil || res.Detail.AvgSafety > best.Detail.AvgSafety {
			best = res
		}
	}
	fmt.Printf("\n%d of %d sample routes found\n", len(routes), *numSamples)
	if best == nil {
		return
	}
	fmt.Println("\nSafest sample route:")
	printRoute(best)
	if err := export(best, strategy, log); err != nil {
		log.Fatal("export route", zap.Error(err))
	}
}

func export(res *engine.RouteResult, strategy costfunction.Strategy, log *zap.Logger) error {
	if *jsonOut != "" {
		f, err := os.Create(*jsonOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := geometry.ExportRouteJSON(f, strategy.String(), res.Route); err != nil {
			return err
		}
		log.Info("route exported", zap.String("file", *jsonOut))
	}
	if *geojsonOut != "" {
		proj, err := geo.NewProjector(viper.GetInt("routing.utm_zone"), viper.GetBool("routing.utm_northern"))
		if err != nil {
			return err
		}
		f, err := os.Create(*geojsonOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := geometry.ExportRouteGeoJSON(f, strategy.String(), res.Route, proj); err != nil {
			return err
		}
		log.Info("route exported", zap.String("file", *geojsonOut))
	}
	return nil
}

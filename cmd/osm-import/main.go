package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"

	"skyline/internal/model"
	"skyline/internal/util"
)

// Extracts building footprints from an OSM PBF extract and writes them as
// a JSON array of building records, ready to feed a viewer session.
//
// Usage: osm-import [-center lat,lon -radius meters] [-out file] <path-to-osm.pbf>

const metersPerLevel = 3.0

func main() {
	center := flag.String("center", "", "clip center as lat,lon")
	radius := flag.Float64("radius", 0, "clip radius in meters around center")
	out := flag.String("out", "buildings.json", "output file")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: osm-import [-center lat,lon -radius meters] [-out file] <path-to-osm.pbf>")
	}
	osmFile := flag.Arg(0)

	var clipLat, clipLon float64
	clip := false
	if *center != "" && *radius > 0 {
		parts := strings.Split(*center, ",")
		if len(parts) != 2 {
			log.Fatal("center must be lat,lon")
		}
		var err error
		if clipLat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
			log.Fatalf("Bad center latitude: %v", err)
		}
		if clipLon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			log.Fatalf("Bad center longitude: %v", err)
		}
		clip = true
	}

	log.Printf("Processing file: %s", osmFile)

	f, err := os.Open(osmFile)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer f.Close()

	numProcs := runtime.GOMAXPROCS(-1)

	// Phase 1: cache node coordinates so ways can be resolved to rings.
	log.Println("Phase 1: caching node coordinates...")
	nodeCache := make(map[int64][2]float64)

	decoder := osmpbf.NewDecoder(f)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	decoder.Start(numProcs)

	for {
		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error decoding: %v", err)
		}

		if node, ok := object.(*osmpbf.Node); ok {
			nodeCache[node.ID] = [2]float64{node.Lon, node.Lat}
		}
	}
	log.Printf("Cached %d nodes", len(nodeCache))

	// Phase 2: collect closed building ways.
	log.Println("Phase 2: collecting building ways...")
	if _, err := f.Seek(0, 0); err != nil {
		log.Fatalf("Failed to rewind file: %v", err)
	}
	decoder = osmpbf.NewDecoder(f)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	decoder.Start(numProcs)

	var records []model.BuildingRecord
	skipped := 0

	for {
		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error decoding: %v", err)
		}

		way, ok := object.(*osmpbf.Way)
		if !ok {
			continue
		}
		if _, isBuilding := way.Tags["building"]; !isBuilding {
			continue
		}
		if len(way.NodeIDs) < 4 || way.NodeIDs[0] != way.NodeIDs[len(way.NodeIDs)-1] {
			// Open ways are building parts or broken data, skip them.
			skipped++
			continue
		}

		ring := make(orb.Ring, 0, len(way.NodeIDs))
		complete := true
		for _, id := range way.NodeIDs {
			coord, ok := nodeCache[id]
			if !ok {
				complete = false
				break
			}
			ring = append(ring, orb.Point{coord[0], coord[1]})
		}
		if !complete {
			skipped++
			continue
		}

		if clip && !util.WithinRadius(clipLat, clipLon, ring[0][1], ring[0][0], *radius) {
			continue
		}

		records = append(records, model.BuildingRecord{
			ID:         strconv.FormatInt(way.ID, 10),
			Footprint:  ring,
			Height:     buildingHeight(way.Tags),
			Attributes: buildingAttributes(way.Tags),
		})
	}

	log.Printf("Collected %d buildings (%d skipped)", len(records), skipped)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode records: %v", err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %s", *out)
}

// buildingHeight prefers the explicit height tag and falls back to
// building:levels at a nominal meters-per-level.
func buildingHeight(tags map[string]string) float64 {
	if raw, ok := tags["height"]; ok {
		raw = strings.TrimSuffix(strings.TrimSpace(raw), " m")
		if h, err := strconv.ParseFloat(raw, 64); err == nil && h > 0 {
			return h
		}
	}
	if raw, ok := tags["building:levels"]; ok {
		if levels, err := strconv.ParseFloat(raw, 64); err == nil && levels > 0 {
			return levels * metersPerLevel
		}
	}
	return 0
}

func buildingAttributes(tags map[string]string) map[string]string {
	attrs := make(map[string]string)
	for _, key := range []string{"building", "name", "addr:street", "addr:housenumber", "building:levels", "height"} {
		if v, ok := tags[key]; ok {
			attrs[key] = v
		}
	}
	return attrs
}

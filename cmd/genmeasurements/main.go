package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
)

// A small built-in station list keeps the generator self-contained; names
// cover the short, medium and multibyte cases the aggregator cares about.
var stations = []string{
	"Abha", "Accra", "Addis Ababa", "Alexandra", "Baghdad", "Bangkok",
	"Bridgetown", "Bulawayo", "Conakry", "Cracow", "Dar es Salaam",
	"Dikson", "Dodoma", "Erbil", "Flores,  Petén", "Hamburg", "Hanga Roa",
	"Ho Chi Minh City", "Istanbul", "Jayapura", "Kuala Lumpur",
	"La Ceiba", "Las Palmas de Gran Canaria", "Lubumbashi", "Murmansk",
	"N'Djamena", "Nakhon Ratchasima", "Ouagadougou", "Palembang",
	"Petropavlovsk-Kamchatsky", "Pointe-Noire", "Port-Gentil", "Roseau",
	"San Pedro Sula", "Santo Domingo", "São Paulo", "St. John's",
	"Thiès", "Tromsø", "Ürümqi", "Vaduz", "Washington, D.C.", "Wrocław",
	"Xi'an", "Yakutsk", "Ülkenqala", "İzmir", "Łódź", "Ōsaka",
}

func main() {
	log.SetFlags(0)

	var (
		rows = flag.Int("rows", 1_000_000, "number of measurement rows to generate")
		out  = flag.String("out", "measurements.txt", "output file path")
		seed = flag.Int64("seed", 0, "random seed (0 means non-deterministic)")
	)
	flag.Parse()

	if *rows <= 0 {
		log.Fatal("rows must be a positive integer")
	}

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	for i := 0; i < *rows; i++ {
		name := stations[rng.Intn(len(stations))]
		temp := clampTenths(rng.NormFloat64() * 200)
		sign := ""
		if temp < 0 {
			sign = "-"
			temp = -temp
		}
		fmt.Fprintf(w, "%s;%s%d.%d\n", name, sign, temp/10, temp%10)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
}

// clampTenths keeps generated temperatures within the documented
// [-99.9, 99.9] range, in tenths.
func clampTenths(v float64) int {
	t := int(v)
	if t > 999 {
		t = 999
	}
	if t < -999 {
		t = -999
	}
	return t
}

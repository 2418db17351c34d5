package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/api/bannerv1"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type locationsFlag []string

func (l *locationsFlag) String() string { return strings.Join(*l, ",") }

func (l *locationsFlag) Set(v string) error {
	*l = append(*l, v)

	return nil
}

func main() {
	var (
		addr      string
		timeout   time.Duration
		locations locationsFlag
	)

	flag.StringVar(&addr, "addr", "localhost:51234", "banner service address")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per call timeout")
	flag.Var(&locations, "location", "location to query (repeatable)")
	flag.Parse()

	if len(locations) == 0 {
		locations = locationsFlag{"US", "FR", "INVALID_LOCATION", "GB", "DE"}
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	client := bannerv1.NewBannerServiceClient(conn)

	for _, location := range locations {
		printBanner(client, location, timeout)
	}
}

func printBanner(client bannerv1.BannerServiceClient, location string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetCurrentBanner(ctx, &bannerv1.GetCurrentBannerRequest{Location: location})
	if err != nil {
		st := status.Convert(err)
		fmt.Printf("gRPC error for %s: %s - %s\n", location, st.Code(), st.Message())

		return
	}

	fmt.Printf("Banner Response (%s):\n", location)
	fmt.Printf("Title: %s\n", resp.Title)
	fmt.Printf("Description: %s\n", resp.Description)
	fmt.Printf("Image Format: %s\n", resp.ImageFormat)
	fmt.Printf("Image Data Size: %d bytes\n", len(resp.Image))
}

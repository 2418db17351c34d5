package bannerv1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName                      = "banner.v1.BannerService"
	BannerServiceGetCurrentBannerRPC = "/" + ServiceName + "/GetCurrentBanner"
)

type BannerServiceServer interface {
	GetCurrentBanner(context.Context, *GetCurrentBannerRequest) (*GetCurrentBannerResponse, error)
}

type BannerServiceClient interface {
	GetCurrentBanner(ctx context.Context, in *GetCurrentBannerRequest,
		opts ...grpc.CallOption) (*GetCurrentBannerResponse, error)
}

type bannerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBannerServiceClient(cc grpc.ClientConnInterface) BannerServiceClient {
	return &bannerServiceClient{cc: cc}
}

func (c *bannerServiceClient) GetCurrentBanner(ctx context.Context, in *GetCurrentBannerRequest,
	opts ...grpc.CallOption,
) (*GetCurrentBannerResponse, error) {
	out := new(GetCurrentBannerResponse)

	if err := c.cc.Invoke(ctx, BannerServiceGetCurrentBannerRPC, in, out, opts...); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return out, nil
}

func RegisterBannerServiceServer(s grpc.ServiceRegistrar, srv BannerServiceServer) {
	s.RegisterService(&BannerServiceDesc, srv)
}

func getCurrentBannerHandler(srv any, ctx context.Context, //nolint:revive
	dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetCurrentBannerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(BannerServiceServer).GetCurrentBanner(ctx, in) //nolint:forcetypeassert
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: BannerServiceGetCurrentBannerRPC,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BannerServiceServer).GetCurrentBanner(ctx, req.(*GetCurrentBannerRequest)) //nolint:forcetypeassert
	}

	return interceptor(ctx, in, info, handler)
}

// BannerServiceDesc describes banner.v1.BannerService for grpc.Server.
var BannerServiceDesc = grpc.ServiceDesc{ //nolint:gochecknoglobals
	ServiceName: ServiceName,
	HandlerType: (*BannerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCurrentBanner",
			Handler:    getCurrentBannerHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: FileName,
}

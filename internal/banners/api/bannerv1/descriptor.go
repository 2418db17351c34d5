package bannerv1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const FileName = "banner/v1/banner.proto"

// File describes banner/v1/banner.proto. It is registered globally so that
// server reflection can serve the schema.
var File = mustBuildFile() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	if err := protoregistry.GlobalFiles.RegisterFile(File); err != nil {
		panic(fmt.Sprintf("register %s error: %v", FileName, err))
	}
}

func mustBuildFile() protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(fileProto(), nil)
	if err != nil {
		panic(fmt.Sprintf("build %s error: %v", FileName, err))
	}

	return fd
}

func fileProto() *descriptorpb.FileDescriptorProto {
	field := func(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(num),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   typ.Enum(),
		}
	}

	str := descriptorpb.FieldDescriptorProto_TYPE_STRING

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String("banner.v1"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name:  proto.String("GetCurrentBannerRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{field("location", 1, str)},
			},
			{
				Name: proto.String("GetCurrentBannerResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("title", 1, str),
					field("description", 2, str),
					field("image", 3, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
					field("image_format", 4, str),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("BannerService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String("GetCurrentBanner"),
						InputType:  proto.String(".banner.v1.GetCurrentBannerRequest"),
						OutputType: proto.String(".banner.v1.GetCurrentBannerResponse"),
					},
				},
			},
		},
	}
}

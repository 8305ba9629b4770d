package msgs

import (
	"github.com/golang/protobuf/proto"
)

// TypedPb is the envelope on the wire.
type TypedPb struct {
	TypeId  uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Message []byte `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *TypedPb) Reset()         { *m = TypedPb{} }
func (m *TypedPb) String() string { return proto.CompactTextString(m) }
func (*TypedPb) ProtoMessage()    {}

// LineEventPb is an event observed on the line.
type LineEventPb struct {
	Kind  int32  `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Value uint32 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	Cycle uint64 `protobuf:"varint,3,opt,name=cycle,proto3" json:"cycle,omitempty"`
}

func (m *LineEventPb) Reset()         { *m = LineEventPb{} }
func (m *LineEventPb) String() string { return proto.CompactTextString(m) }
func (*LineEventPb) ProtoMessage()    {}

// StatsPb are the counters of the device.
type StatsPb struct {
	Received      uint64 `protobuf:"varint,1,opt,name=received,proto3" json:"received,omitempty"`
	Sent          uint64 `protobuf:"varint,2,opt,name=sent,proto3" json:"sent,omitempty"`
	FramingErrors uint64 `protobuf:"varint,3,opt,name=framing_errors,json=framingErrors,proto3" json:"framing_errors,omitempty"`
	Overruns      uint64 `protobuf:"varint,4,opt,name=overruns,proto3" json:"overruns,omitempty"`
	Cycle         uint64 `protobuf:"varint,5,opt,name=cycle,proto3" json:"cycle,omitempty"`
}

func (m *StatsPb) Reset()         { *m = StatsPb{} }
func (m *StatsPb) String() string { return proto.CompactTextString(m) }
func (*StatsPb) ProtoMessage()    {}

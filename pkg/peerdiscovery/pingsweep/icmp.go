package pingsweep

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var icmpSeq atomic.Uint32

// ICMPProber sends one ICMP echo request per probe over its own socket.
type ICMPProber struct {
	// Privileged uses raw sockets (root/admin) instead of datagram ICMP sockets.
	Privileged bool
}

// Probe sends an echo request and waits for the matching reply.
func (p *ICMPProber) Probe(ctx context.Context, ip string, timeout time.Duration) bool {
	dst := net.ParseIP(ip).To4()
	if dst == nil {
		return false
	}

	network := "udp4"
	var addr net.Addr = &net.UDPAddr{IP: dst}
	if p.Privileged {
		network = "ip4:icmp"
		addr = &net.IPAddr{IP: dst}
	}

	conn, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return false
	}
	defer func() {
		_ = conn.Close()
	}()

	id := os.Getpid() & 0xffff
	seq := int(icmpSeq.Add(1) & 0xffff)
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: []byte("HELLO-R-U-THERE"),
		},
	}
	msgBytes, err := msg.Marshal(nil)
	if err != nil {
		return false
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false
	}
	if _, err := conn.WriteTo(msgBytes, addr); err != nil {
		return false
	}

	reply := make([]byte, 1500)
	for {
		if ctx.Err() != nil {
			return false
		}
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			// deadline exceeded or socket error
			return false
		}
		if !peerIP(peer).Equal(dst) {
			continue
		}
		rm, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), reply[:n])
		if err != nil || rm.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		echo, ok := rm.Body.(*icmp.Echo)
		if !ok || echo.Seq != seq {
			continue
		}
		// the kernel rewrites the ID of datagram sockets
		if p.Privileged && echo.ID != id {
			continue
		}
		return true
	}
}

func peerIP(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.UDPAddr:
		return v.IP
	case *net.IPAddr:
		return v.IP
	}
	return nil
}

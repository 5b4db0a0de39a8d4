package kami

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tranmanhhung/sn111/internal/config"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Kami) {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	kc := &config.KamiEnvConfig{
		KamiHost: ts.Listener.Addr().(*net.TCPAddr).IP.String(),
		KamiPort: fmt.Sprint(ts.Listener.Addr().(*net.TCPAddr).Port),
	}
	k, err := NewKami(kc)
	if err != nil {
		t.Fatalf("new kami: %v", err)
	}
	k.BaseURL = ts.URL
	k.client.SetBaseURL(ts.URL)
	return ts, k
}

func TestNewKami_NilConfig(t *testing.T) {
	_, err := NewKami(nil)
	if err == nil {
		t.Fatalf("expected error when cfg is nil")
	}
}

func TestGetMetagraph_Success(t *testing.T) {
	payload := `{"statusCode":200,"success":true,"data":{"netuid":111,"name":"oneoneone","symbol":"one","hotkeys":["hk1","hk2"],"coldkeys":["ck1","ck2"],"axons":[{"ip":"1.2.3.4","port":8091}],"active":[true,true],"alphaStake":[10,2000],"taoStake":[0,0],"totalStake":[10,2000],"numUids":2,"maxUids":256},"error":null}`
	_, k := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/subnet-metagraph/111" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(payload))
	})

	res, err := k.GetMetagraph(111)
	if err != nil {
		t.Fatalf("GetMetagraph error: %v", err)
	}
	if res.Data.Netuid != 111 || len(res.Data.Hotkeys) != 2 {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestGetLatestBlock_Success(t *testing.T) {
	_, k := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/latest-block" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"parentHash":"0x1","blockNumber":42,"stateRoot":"0x2","extrinsicsRoot":"0x3"},"error":null}`))
	})

	res, err := k.GetLatestBlock()
	if err != nil {
		t.Fatalf("GetLatestBlock error: %v", err)
	}
	if res.Data.BlockNumber != 42 {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestSetWeights_Success(t *testing.T) {
	_, k := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/set-weights" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"statusCode":200,"success":true,"data":"0xdead","error":null}`))
	})

	res, err := k.SetWeights(SetWeightsParams{Netuid: 111, Dests: []int{0}, Weights: []int{65535}})
	if err != nil {
		t.Fatalf("SetWeights error: %v", err)
	}
	if res.Data != "0xdead" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestSetWeights_HTTPError(t *testing.T) {
	_, k := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad"))
	})
	if _, err := k.SetWeights(SetWeightsParams{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestServeAxon_ResponseErrorField(t *testing.T) {
	_, k := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"statusCode":200,"success":false,"data":"","error":{"msg":"boom"}}`))
	})
	if _, err := k.ServeAxon(ServeAxonParams{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSignVerifyAndKeyring_Success(t *testing.T) {
	_, k := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/substrate/sign-message/sign":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"statusCode":200,"success":true,"data":{"signature":"sig"},"error":null}`))
		case "/substrate/sign-message/verify":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"statusCode":200,"success":true,"data":{"valid":true},"error":null}`))
		case "/substrate/keyring-pair-info":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"statusCode":200,"success":true,"data":{"keyringPair":{"address":"addr","isLocked":false,"meta":{},"publicKey":{},"type":"sr25519"},"walletColdkey":"cold"},"error":null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	sig, err := k.SignMessage(SignMessageParams{Message: "m"})
	if err != nil || sig.Data.Signature != "sig" {
		t.Fatalf("sign unexpected: %v %+v", err, sig)
	}
	ver, err := k.VerifyMessage(VerifyMessageParams{Message: "m", Signature: "s", SigneeAddress: "a"})
	if err != nil || !ver.Data.Valid {
		t.Fatalf("verify unexpected: %v %+v", err, ver)
	}
	kr, err := k.GetKeyringPair()
	if err != nil || kr.Data.KeyringPair.Address != "addr" {
		t.Fatalf("keyring unexpected: %v %+v", err, kr)
	}
}

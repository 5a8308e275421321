package create3

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// Expected addresses were produced with Solady's CREATE3.getDeployed.

const fireAndIce = "Some say the world will end in fire, Some say in ice. From what Iâ€™ve tasted of desire I hold with those who favor fire. But if it had to perish twice, I think I know enough of hate To say that for destruction ice Is also great And would suffice."

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestAddressFromSaltString(t *testing.T) {
	deployer := mustHex(t, "0fC5025C764cE34df352757e82f7B5c4Df39A836")
	tests := []struct {
		salt string
		want string
	}{
		{"a", "BFf47440D3A5E59714F1D995F8b105E2a04AB46A"},
		{"b", "7E10Ca8fa1c8e1528601Fea82F51646182f835b8"},
		{"c", "70b556548FF0161082fB751d5E372eFa0133805C"},
		{fireAndIce, "C244c5dEa48e677cE7cAbD05BF8eC220b1a99Fc9"},
	}
	for _, tt := range tests {
		name := tt.salt
		if len(name) > 10 {
			name = name[:10]
		}
		t.Run(name, func(t *testing.T) {
			addr := Address(deployer, []byte(tt.salt))
			require.Equal(t, strings.ToLower(tt.want), hex.EncodeToString(addr[:]))
		})
	}
}

func TestAddressFromDigest(t *testing.T) {
	deployer := mustHex(t, "d8b934580fcE35a11B58C6D73aDeE468a2833fa8")
	tests := []struct {
		digest string
		want   string
	}{
		{"3ac225168df54212a25c1c01fd35bebfea408fdac2e31ddd6f80a4bbf9a5f1cb", "442188F25da4ac213D55aE81F1BFB421a4eb4562"},
		{"b5553de315e0edf504d9150af82dafa5c4667fa618ed0a6f19c69b41166c5510", "551b9d8A7106Fdf98e68c4bf12Da1f23ad70C815"},
		{"0b42b6393c1f53060fe3ddbfcd7aadcca894465a5a438f69c87d790b2299b9b2", "43d8e8C69fd771f7D3F4e25697Dadd3cC11D1cDB"},
		{"ead17456afde832907c72ba39033455130a8f4d540a869ba31312c2746bf9c4b", "AB3D55404C5C21D18403A71aF5f6887BD0EC8d56"},
	}
	for _, tt := range tests {
		t.Run(tt.digest[:8], func(t *testing.T) {
			addr := AddressFromDigest(deployer, common.HexToHash(tt.digest))
			require.Equal(t, strings.ToLower(tt.want), hex.EncodeToString(addr[:]))
		})
	}
}

// The derivation is CREATE2 of the proxy followed by CREATE with nonce 1,
// so go-ethereum's own helpers must agree with it.
func TestAddressMatchesGethCreateHelpers(t *testing.T) {
	deployers := []common.Address{
		common.HexToAddress("0x0fC5025C764cE34df352757e82f7B5c4Df39A836"),
		common.HexToAddress("0xd8b934580fcE35a11B58C6D73aDeE468a2833fa8"),
		common.HexToAddress("0x5e17b14ADd6c386305A32928F985b29bbA34Eff5"),
	}
	salts := []string{"", "a", "testpfx_Ab3dE9x", "0123456789", fireAndIce}
	for _, deployer := range deployers {
		for _, salt := range salts {
			digest := gethcrypto.Keccak256Hash([]byte(salt))
			proxy := gethcrypto.CreateAddress2(deployer, digest, ProxyBytecodeHash[:])
			want := gethcrypto.CreateAddress(proxy, 1)

			require.Equal(t, proxy, ProxyAddress(deployer[:], digest))
			require.Equal(t, want, AddressFromDigest(deployer[:], digest))
			require.Equal(t, want, Address(deployer[:], []byte(salt)))
		}
	}
}

func TestDigest(t *testing.T) {
	require.Equal(t, gethcrypto.Keccak256Hash([]byte("a")), Digest([]byte("a")))
	require.Equal(t,
		common.HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		Digest(nil))
}

func TestDeriverReuse(t *testing.T) {
	deployer := mustHex(t, "0fC5025C764cE34df352757e82f7B5c4Df39A836")
	d := NewDeriver(deployer)

	var out common.Address
	for _, salt := range []string{"c", "a", "b", "a"} {
		d.SaltAddressInto([]byte(salt), &out)
		require.Equal(t, Address(deployer, []byte(salt)), out)
		require.Equal(t, Digest([]byte(salt)), d.LastDigest())
	}

	digest := Digest([]byte("b"))
	d.AddressInto(&digest, &out)
	require.Equal(t, "7e10ca8fa1c8e1528601fea82f51646182f835b8", hex.EncodeToString(out[:]))
}

func TestProxyBytecodeHash(t *testing.T) {
	want := []byte{
		33, 195, 93, 190, 27, 52, 74, 36, 136, 207, 51, 33, 214, 206, 84, 47,
		142, 159, 48, 85, 68, 255, 9, 228, 153, 58, 98, 49, 154, 73, 124, 31,
	}
	require.Equal(t, want, ProxyBytecodeHash.Bytes())
}

func BenchmarkDeriverSaltAddressInto(b *testing.B) {
	d := NewDeriver(mustHex(b, "0fC5025C764cE34df352757e82f7B5c4Df39A836"))
	salt := []byte("abcdefghij")
	var out common.Address
	b.ReportAllocs()
	for b.Loop() {
		d.SaltAddressInto(salt, &out)
	}
}

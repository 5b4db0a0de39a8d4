package kami

// KamiInterface is the surface of the subtensor gateway the node depends on.
type KamiInterface interface {
	GetMetagraph(netuid int) (SubnetMetagraphResponse, error)
	GetSubnetHyperparams(netuid int) (SubnetHyperparamsResponse, error)
	GetLatestBlock() (LatestBlockResponse, error)
	SetWeights(params SetWeightsParams) (ExtrinsicHashResponse, error)
	ServeAxon(params ServeAxonParams) (ExtrinsicHashResponse, error)
	SignMessage(params SignMessageParams) (SignMessageResponse, error)
	VerifyMessage(params VerifyMessageParams) (VerifyMessageResponse, error)
	GetKeyringPair() (KeyringPairInfoResponse, error)
}

// Response is the typed envelope every gateway endpoint returns.
type Response[T any] struct {
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
	Data       T              `json:"data"`
	Error      map[string]any `json:"error"`
}

type (
	SubnetMetagraphResponse   = Response[SubnetMetagraph]
	SubnetHyperparamsResponse = Response[SubnetHyperparams]
	LatestBlockResponse       = Response[LatestBlock]
	KeyringPairInfoResponse   = Response[KeyringPairInfo]
	SignMessageResponse       = Response[SignMessage]
	VerifyMessageResponse     = Response[VerifyMessage]
	ExtrinsicHashResponse     = Response[string]
)

// SubnetMetagraph is the gateway's snapshot of a subnet: registration data,
// hyperparams, and per-uid state arrays indexed by uid.
type SubnetMetagraph struct {
	Netuid              int       `json:"netuid"`
	Name                string    `json:"name"`
	Symbol              string    `json:"symbol"`
	OwnerHotkey         string    `json:"ownerHotkey"`
	OwnerColdkey        string    `json:"ownerColdkey"`
	Block               int       `json:"block"`
	Tempo               int       `json:"tempo"`
	WeightsVersion      int       `json:"weightsVersion"`
	WeightsRateLimit    int       `json:"weightsRateLimit"`
	MaxValidators       int       `json:"maxValidators"`
	NumUids             int       `json:"numUids"`
	MaxUids             int       `json:"maxUids"`
	RegistrationAllowed bool      `json:"registrationAllowed"`
	ImmunityPeriod      int       `json:"immunityPeriod"`
	Hotkeys             []string  `json:"hotkeys"`
	Coldkeys            []string  `json:"coldkeys"`
	Axons               []AxonInfo `json:"axons"`
	Active              []bool    `json:"active"`
	ValidatorPermit     []bool    `json:"validatorPermit"`
	LastUpdate          []int     `json:"lastUpdate"`
	AlphaStake          []float64 `json:"alphaStake"`
	TaoStake            []float64 `json:"taoStake"`
	TotalStake          []float64 `json:"totalStake"`
}

type AxonInfo struct {
	Block        int    `json:"block"`
	Version      int    `json:"version"`
	IP           string `json:"ip"`
	Port         int    `json:"port"`
	IPType       int    `json:"ipType"`
	Protocol     int    `json:"protocol"`
	Placeholder1 int    `json:"placeholder1"`
	Placeholder2 int    `json:"placeholder2"`
}

type SubnetHyperparams struct {
	ImmunityPeriod        int  `json:"immunityPeriod"`
	Tempo                 int  `json:"tempo"`
	WeightsVersion        int  `json:"weightsVersion"`
	WeightsRateLimit      int  `json:"weightsRateLimit"`
	RegistrationAllowed   bool `json:"registrationAllowed"`
	TargetRegsPerInterval int  `json:"targetRegsPerInterval"`
	MaxRegsPerBlock       int  `json:"maxRegsPerBlock"`
	MaxValidators         int  `json:"maxValidators"`
}

type LatestBlock struct {
	ParentHash     string `json:"parentHash"`
	BlockNumber    int    `json:"blockNumber"`
	StateRoot      string `json:"stateRoot"`
	ExtrinsicsRoot string `json:"extrinsicsRoot"`
}

type KeyringPair struct {
	Address   string         `json:"address"`
	IsLocked  bool           `json:"isLocked"`
	Meta      map[string]any `json:"meta"`
	PublicKey map[string]any `json:"publicKey"`
	Type      string         `json:"type"`
}

type KeyringPairInfo struct {
	KeyringPair   KeyringPair `json:"keyringPair"`
	WalletColdkey string      `json:"walletColdkey"`
}

type SetWeightsParams struct {
	Netuid     int   `json:"netuid"`
	Dests      []int `json:"dests"`
	Weights    []int `json:"weights"`
	VersionKey int   `json:"versionKey"`
}

type ServeAxonParams struct {
	Netuid       int `json:"netuid"`
	Version      int `json:"version"`
	IP           int `json:"ip"`
	Port         int `json:"port"`
	IPType       int `json:"ipType"`
	Protocol     int `json:"protocol"`
	Placeholder1 int `json:"placeholder1"`
	Placeholder2 int `json:"placeholder2"`
}

type SignMessageParams struct {
	Message string `json:"message"`
}

type SignMessage struct {
	Signature string `json:"signature"`
}

type VerifyMessageParams struct {
	Message       string `json:"message"`
	Signature     string `json:"signature"`
	SigneeAddress string `json:"signeeAddress"`
}

type VerifyMessage struct {
	Valid bool `json:"valid"`
}

package streams

type State int32

const (
  Disconnected State = iota
  Connecting
  Streaming
  RateLimited
  Erroring
)

func (s State) String() string {
  switch s {
  case Disconnected:
    return "disconnected"
  case Connecting:
    return "connecting"
  case Streaming:
    return "streaming"
  case RateLimited:
    return "rate_limited"
  case Erroring:
    return "erroring"
  }
  return "unknown"
}

// SPDX-License-Identifier: EPL-2.0

package main

const usage = `audplay - audio player with speed, EQ and limiter

USAGE:
  audplay [flags] [file ...]

FLAGS:
  -d, -driver NAME         output driver: oto, null, portaudio (AUDPLAY_DRIVER)
  -block N                 frames per audio callback (AUDPLAY_BLOCK_SIZE)
  -rate HZ                 resample tracks to HZ, 0 keeps theirs (AUDPLAY_TARGET_RATE)
  -mono                    fold tracks to one channel (AUDPLAY_MONO)
  -volume V                initial volume 0..1 (AUDPLAY_VOLUME)
  -speed S                 initial speed, 1 is normal (AUDPLAY_SPEED)
  -eq G1,G2,...            band gains in dB, 32 Hz to 16 kHz (AUDPLAY_EQ)
  -limiter-threshold DB    limiter threshold (AUDPLAY_LIMITER_THRESHOLD)
  -limiter-ratio R         limiter ratio (AUDPLAY_LIMITER_RATIO)
  -limiter-attack MS       limiter attack (AUDPLAY_LIMITER_ATTACK)
  -limiter-release MS      limiter release (AUDPLAY_LIMITER_RELEASE)
  -l, -log-level LEVEL     debug, info, warn, error (AUDPLAY_LOG_LEVEL)
  -log-format FORMAT       text, json, logfmt (AUDPLAY_LOG_FORMAT)
  -h, -help                show this help
` + commandHelp

const commandHelp = `
COMMANDS:
  play | pause | stop      transport control
  seek SECONDS             jump to a position
  volume V                 set volume 0..1
  speed S                  set playback speed
  eq                       show band gains
  eq BAND DB               set one band, BAND is 0..9
  limiter                  show limiter settings
  limiter DB RATIO ATTACK RELEASE
  load FILE                load a file and append it to the playlist
  next | prev              move through the playlist
  status                   show position and settings
  help                     show commands
  quit                     exit
`
